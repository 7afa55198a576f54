package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/healthy-living/internal/config"
	"github.com/ytget/healthy-living/internal/entrystore"
	"github.com/ytget/healthy-living/internal/form"
	"github.com/ytget/healthy-living/internal/imagefetch"
	"github.com/ytget/healthy-living/internal/presenter"
	"github.com/ytget/healthy-living/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.healthy-living"
	AppName = "Healthy Living App"

	WindowWidth  = 480
	WindowHeight = 760
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewHealthyTheme())

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	if icon, err := ui.LoadLogoResource(); err == nil {
		myWindow.SetIcon(icon)
	}

	// Initialize services
	settings := config.NewSettings(myApp)

	retries := 0
	if settings.GetFetchRetryEnabled() {
		retries = imagefetch.DefaultMaxRetries
	}
	fetcher := imagefetch.NewService(imagefetch.Options{
		Timeout:    settings.GetFetchTimeout(),
		MaxBytes:   settings.GetMaxImageBytes(),
		MaxRetries: retries,
	})

	store := entrystore.NewService()
	controller := form.NewController(store)
	rows := presenter.New(store, fetcher)

	// Create and setup UI before the first render so no update is missed
	ui.NewRootUI(myWindow, myApp, settings, controller, rows)
	rows.Start()

	myWindow.ShowAndRun()

	rows.Close()
	log.Printf("%s stopped", AppName)
}
