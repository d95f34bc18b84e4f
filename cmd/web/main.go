// @title           Time Capsule Upload API
// @version         1.0
// @description     Guest file uploads forwarded to a Google Drive folder.
// @host            localhost:8000
// @BasePath        /

package main

import "capsule_backend/internal/app"

func main() {
	app.Run()
}
