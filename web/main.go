package main

import (
	"flag"
	"os"

	"github.com/df07/go-implicit-raytracer/web/server"
	"github.com/golang/glog"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	static := flag.String("static", "static/", "Directory of static files served at /")
	flag.Parse()
	defer glog.Flush()

	webServer := server.NewServer(*port, *static)

	glog.Infof("Implicit Surface Raytracer Web Server")
	glog.Infof("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		glog.Errorf("Error starting server: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}
