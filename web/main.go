package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	staticDir := flag.String("static", "", "Directory of static files to serve at / (empty to disable)")
	texture := flag.String("texture", scene.DefaultTexturePath, "Image used by the textured scenes")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *staticDir, scene.Options{TexturePath: *texture})

	log.Printf("Path Tracer Web Server")
	log.Printf("Scenes: http://localhost:%d/api/scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
