package domain

import "regexp"

var hrefRe = regexp.MustCompile(`href="([^"]*)"`)

// hrefLinks lists the href attributes of a fragment without an HTML parser.
type hrefLinks struct{}

func (hrefLinks) Links(fragment string) []string {
	var links []string
	for _, m := range hrefRe.FindAllStringSubmatch(fragment, -1) {
		if m[1] != "" {
			links = append(links, m[1])
		}
	}
	return links
}

const noruDescription = `<p><b>Typhoon  07W (Noru) Warning #47 </b><br>` +
	`Issued at 01/0900Z<br>` +
	`<a href="https://www.metoc.navy.mil/jtwc/products/wp0717.gif" target="newwin">TC Warning Graphic</a><br>` +
	`<a href="https://www.metoc.navy.mil/jtwc/products/wp0717web.txt" target="newwin">TC Warning Text </a><br>` +
	`<a href="https://www.metoc.navy.mil/jtwc/products/abpwweb.txt" target="newwin">Significant Tropical Weather Advisory</a></p>`

const talimDescription = `<p><b>Tropical Storm 13W (Talim) Warning #05 </b><br>` +
	`Issued at 13/0300Z<br>` +
	`<a href="https://www.metoc.navy.mil/jtwc/products/ab1317web.txt">Best Track</a><br>` +
	`<a href="https://www.metoc.navy.mil/jtwc/products/wp1317web.txt">TC Warning Text </a></p>`

const noruBulletin = `WTPN31 PGTW 010900
1. TYPHOON 07W (NORU) WARNING NR 047
   WARNING POSITION:
   010600Z --- NEAR 30.1N 134.2E
   MOVEMENT PAST SIX HOURS - 325 DEGREES AT 05 KTS
   PRESENT WIND DISTRIBUTION:
   MAX SUSTAINED WINDS - 090 KT, GUSTS 110 KT
   RADIUS OF 064 KT WINDS - 025 NM NORTHEAST QUADRANT
                            025 NM SOUTHEAST QUADRANT
   RADIUS OF 050 KT WINDS - 050 NM NORTHEAST QUADRANT
                            045 NM SOUTHEAST QUADRANT
   RADIUS OF 034 KT WINDS - 110 NM NORTHEAST QUADRANT
                            100 NM SOUTHEAST QUADRANT
   FORECASTS:
   12 HRS, VALID AT:
   011800Z --- 31.0N 133.6E
   MAX SUSTAINED WINDS - 085 KT, GUSTS 105 KT
   RADIUS OF 064 KT WINDS - 020 NM NORTHEAST QUADRANT
   RADIUS OF 050 KT WINDS - 045 NM NORTHEAST QUADRANT
   RADIUS OF 034 KT WINDS - 100 NM NORTHEAST QUADRANT
2. REMARKS:
   NEXT WARNINGS AT 011500Z AND 012100Z.
`
