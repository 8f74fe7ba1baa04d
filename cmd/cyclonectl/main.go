// Command cyclonectl queries the JTWC feed from the command line.
//
// Usage:
//
//	cyclonectl list
//	cyclonectl get 07W --output yaml
//	cyclonectl parse wp0717web.txt
package main

func main() {
	Execute()
}
