package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/esimov/eraser"
	"github.com/esimov/eraser/utils"
)

const HelpBanner = `
┌─┐┬─┐┌─┐┌─┐┌─┐┬─┐
├┤ ├┬┘├─┤└─┐├┤ ├┬┘
└─┘┴└─┴ ┴└─┘└─┘┴└─

Erase the image with the mouse and watch it fade away.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	source       = flag.String("in", "", "Source image: file path, URL or - for stdin")
	canvasID     = flag.String("canvas", "eraseCanvas", "Drawing surface id")
	percentageID = flag.String("percentage", "percentage", "Percentage display id")
	width        = flag.Int("width", 1024, "Window width")
	height       = flag.Int("height", 768, "Window height")
	fullscreen   = flag.Bool("fullscreen", false, "Use the full screen")
	title        = flag.String("title", "Eraser", "Window title")
	debug        = flag.Bool("debug", false, "Log the widget state transitions")
	closeOnDone  = flag.Bool("close", false, "Close the window once the image faded out")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*source) == 0 {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide the source image!", utils.ErrorMessage))
	}
	if *width <= 0 || *height <= 0 {
		log.Fatal(utils.DecorateText("The window width and height should be greater than zero!", utils.ErrorMessage))
	}

	spinner := utils.NewSpinner(fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ ERASER", utils.StatusMessage),
		utils.DecorateText("⇢ loading the image...", utils.DefaultMessage),
	), time.Millisecond*80)

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		spinner.RestoreCursor()
		os.Exit(1)
	}()

	var gui *eraser.Gui

	now := time.Now()
	cfg := eraser.Config{
		CanvasID:      *canvasID,
		ImagePath:     *source,
		PercentageID:  *percentageID,
		Debug:         *debug,
		OnStateChange: stateReporter(spinner, now, func() error { return gui.Widget().Err() }),
	}

	gui = eraser.NewGUI(*width, *height, *title, *fullscreen, cfg, eraser.NewFileLoader())
	gui.CloseOnHidden = *closeOnDone

	go func() {
		spinner.Start()
		err := gui.Run()
		spinner.Stop()
		if err != nil {
			log.Fatal(utils.DecorateText(fmt.Sprintf("\nError running the eraser: %v", err), utils.ErrorMessage))
		}
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
		os.Exit(0)
	}()
	app.Main()
}

// stateReporter returns the widget state change hook reporting the progress on the console.
func stateReporter(spinner *utils.Spinner, start time.Time, loadErr func() error) func(from, to eraser.State) {
	return func(from, to eraser.State) {
		switch to {
		case eraser.Interactive:
			spinner.StopMsg = fmt.Sprintf("%s %s %s\n",
				utils.DecorateText("⚡ ERASER", utils.StatusMessage),
				utils.DecorateText("⇢ image loaded in", utils.DefaultMessage),
				utils.DecorateText(utils.FormatTime(time.Since(start)), utils.SuccessMessage),
			)
			spinner.Stop()
		case eraser.LoadFailed:
			spinner.StopMsg = fmt.Sprintf("%s %s\n\t%s\n",
				utils.DecorateText("⚡ ERASER", utils.StatusMessage),
				utils.DecorateText("⇢ unable to load the image ✘", utils.ErrorMessage),
				utils.DecorateText(fmt.Sprintf("Reason: %v", loadErr()), utils.DefaultMessage),
			)
			spinner.Stop()
		case eraser.Hidden:
			fmt.Fprintf(os.Stderr, "%s %s\n",
				utils.DecorateText("⚡ ERASER", utils.StatusMessage),
				utils.DecorateText("⇢ the image faded away ✔", utils.SuccessMessage),
			)
		}
	}
}
