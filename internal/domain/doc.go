// Package domain models Joint Typhoon Warning Center (JTWC) tropical cyclone
// warnings and extracts them from the loosely structured text JTWC publishes.
//
// # Data Source
//
// JTWC publishes an RSS feed of active tropical systems at
// https://metoc.ndbc.noaa.gov/RSSFeeds-portlet/img/jtwc/jtwc.rss. Each item
// covers one basin group; its description is an HTML fragment announcing
// every active cyclone in that group, followed by a list of product links.
//
// # Feed Header Conventions
//
//	<p><b>Typhoon  07W (Noru) Warning #47 </b><br>
//	<b>Issued at 01/0900Z<b>
//	<ul>
//	  <li><a href='.../wp0717web.txt'>TC Warning Text </a></li>
//	  <li><a href='.../wp0717.gif'>TC Warning Graphic</a></li>
//	</ul>
//
//	Category: one or two words before the code ("Typhoon", "Tropical Storm").
//	Code:     basin number + basin letter, e.g. "07W", "10E".
//	Name:     parenthesized, e.g. "(Noru)". Unnamed systems use the number ("Thirteen").
//	Issued:   "DD/HHMMZ". Year and month are not published in the header.
//	Bulletin: the first "<word>.txt" link. Files starting with "ab" are
//	          best-track products and are never selected.
//
// # Bulletin Conventions
//
// The warning bulletin is fixed-width teletype text. Every position block
// starts with a "DDHHMMZ" timestamp:
//
//	121200Z --- NEAR 15.3N 125.4E
//	...
//	MAX SUSTAINED WINDS - 065 KT, GUSTS 080 KT
//	RADIUS OF 034 KT WINDS - 120 NM NORTHEAST QUADRANT
//	                         100 NM SOUTHEAST QUADRANT
//
// The same layout repeats for each forecast position, and timestamps are
// reprinted in the remarks section. Remarks lines have no wind block after
// them and are skipped. Values are kept as the literal tokens; no unit
// conversion or plausibility check is applied.
//
// Wind radii are reported for up to three thresholds (34, 50 and 64 KT),
// each with a radius per compass quadrant.
package domain
