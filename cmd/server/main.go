// Command server starts the BookHive HTTP API.
package main

import "bookhive-api/app"

func main() {
	app.Run()
}
