package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// resultImage is a rendered PNG to be shown in its own window.
type resultImage struct {
	Title string
	Path  string
}

// showResults opens one window per image and blocks until the windows are
// closed. The first image gets the main window.
func showResults(title string, sizePx int, images []resultImage) {
	if len(images) == 0 {
		return
	}

	// We supply an ID (hopefully unique) because we may need to use the preferences API
	myApp := app.NewWithID("com.gmail.ok.anderson.bob.wgmassign")

	size := fyne.NewSize(float32(sizePx)*1.6, float32(sizePx))

	var mainWindow fyne.Window
	for i, ri := range images {
		img := canvas.NewImageFromFile(ri.Path)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(size)

		w := myApp.NewWindow(title + " - " + ri.Title)
		w.SetContent(container.NewStack(img))
		w.Resize(size)

		if i == 0 {
			w.CenterOnScreen()
			mainWindow = w
			continue
		}
		w.Show()
	}

	mainWindow.ShowAndRun()
}
