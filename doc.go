/*
Package lowpoly builds an edge-aware low-poly mesh out of an image and plays a
progressive "GPU rendering" reveal over it.

The source image is resampled to a fixed analysis resolution and run through
a Sobel filter. Points are seeded along the image border, rejection sampled
with a bias toward strong edges and topped up with uniform fill points, then
triangulated with Delaunay. Every triangle takes the color of the image at its
centroid and a priority equal to the edge strength there; the triangles are
sorted by priority so the reveal shows the detailed regions first.

The reveal goes through four phases driven by a single progress value:
vertices, wireframe, raster and resolve, after which the photo fades in.

The package provides a command line utility rendering the reveal to PNG frames.
Check the supported commands by typing:

	$ lowpoly --help

Example of driving the reveal from a host frame loop:

	package main

	import (
		"log"
		"os"
		"time"

		"github.com/esimov/lowpoly"
	)

	func main() {
		f, err := os.Open("scene.jpg")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		scene, err := lowpoly.NewProcessor().Process(f)
		if err != nil {
			log.Fatal(err)
		}
		r := lowpoly.NewRenderer(scene)
		r.Resize(960, 540, 1)

		a := lowpoly.NewAnimator(lowpoly.DefaultAnimatorConfig())
		start := time.Now()
		for {
			frame := a.Tick(time.Since(start))
			img := r.Draw(frame)
			stats := lowpoly.Synthesize(frame, time.Since(start))
			// present img and stats
			_, _ = img, stats
		}
	}
*/
package lowpoly
