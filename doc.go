/*
Package iconkit renders the HappenHub application icon procedurally, at any
resolution, without external image assets.

The artwork is a fixed scene defined on a 1024×1024 logical canvas: a rounded
square backdrop, radial glows, a ring, two stroked arcs, two "link" glyphs with
vertical gradients, a connector and an accent dot. Every output pixel is mapped
back onto the canvas and the layers are composited over each other with a
source-over blend, so only the sampling density changes between sizes.

Rendering a single icon:

	package main

	import (
		"log"
		"os"

		"github.com/happenhub/iconkit"
	)

	func main() {
		data, err := iconkit.RenderPNG(192)
		if err != nil {
			log.Fatalf("error rendering icon: %v", err)
		}
		os.WriteFile("ic_launcher.png", data, 0644)
	}

To regenerate every launcher icon of a project use the iconkit command, which
reads a TOML target manifest:

	$ iconkit -root ./app -verify
*/
package iconkit
