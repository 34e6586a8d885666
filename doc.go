/*
Package eraser implements an erasable image widget. An image is stretched over a
drawing surface and the user rubs it away by moving the pointer over it. The share of
erased pixels is displayed with two fractional digits, and once it reaches half of the
surface the remaining picture fades out and the widget hides itself.

The package provides a command line interface running the widget in a Gio window.
To check the supported flags type:

	$ eraser --help

The widget can also be mounted on any Document implementation, driven by a custom Scheduler:

	package main

	import (
		"image"
		"log"

		"github.com/esimov/eraser"
	)

	func main() {
		page := eraser.NewPage(image.Pt(1024, 768))
		page.AddSurface(eraser.NewSurface("eraseCanvas"))
		page.AddLabel("percentage", "Erased: 0%")

		loop := eraser.NewLoop()
		w, err := eraser.New(eraser.Config{
			CanvasID:     "eraseCanvas",
			ImagePath:    "image.jpg",
			PercentageID: "percentage",
		}, page, loop, eraser.NewFileLoader())
		if err != nil {
			log.Fatal(err)
		}
		defer w.Close()

		for fn := range loop.Events() {
			fn()
		}
	}
*/
package eraser
