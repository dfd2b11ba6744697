package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/keycl/keycl/internal/model"
	"github.com/keycl/keycl/internal/soundpack"
)

// Browser dialog constants
const (
	BrowserWidth  = 480
	BrowserHeight = 520
)

// browserEntry pairs a remote package with its fetched descriptor.
type browserEntry struct {
	remote     model.RemotePackage
	descriptor model.PackageDescriptor
}

// BrowserDialog lists the online sound library and installs packages.
type BrowserDialog struct {
	window fyne.Window
	svc    Services
	dialog dialog.Dialog

	searchEntry *widget.Entry
	statusLabel *widget.Label
	entryList   *widget.List

	entries  []browserEntry
	filtered []browserEntry
}

// NewBrowserDialog creates the online library browser
func NewBrowserDialog(window fyne.Window, svc Services) *BrowserDialog {
	bd := &BrowserDialog{
		window: window,
		svc:    svc,
	}
	bd.createUI()
	return bd
}

// Show displays the browser and starts loading the package index
func (bd *BrowserDialog) Show() {
	bd.dialog.Show()
	go bd.loadIndex()
}

// createUI creates the browser dialog layout
func (bd *BrowserDialog) createUI() {
	bd.searchEntry = widget.NewEntry()
	bd.searchEntry.SetPlaceHolder("Search by title, author or tag")
	bd.searchEntry.OnChanged = func(string) { bd.applyFilter() }

	bd.statusLabel = widget.NewLabel("Loading online library...")

	bd.entryList = widget.NewList(
		func() int { return len(bd.filtered) },
		func() fyne.CanvasObject { return bd.createEntryRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { bd.updateEntryRow(id, obj) },
	)

	content := container.NewBorder(
		container.NewVBox(bd.searchEntry, bd.statusLabel), // top
		nil,          // bottom
		nil,          // left
		nil,          // right
		bd.entryList, // center
	)

	bd.dialog = dialog.NewCustom("Online Sound Library", "Close", content, bd.window)
	bd.dialog.Resize(fyne.NewSize(BrowserWidth, BrowserHeight))
}

// createEntryRow builds the template row for a remote package
func (bd *BrowserDialog) createEntryRow() fyne.CanvasObject {
	title := widget.NewLabel("title")
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Truncation = fyne.TextTruncateEllipsis
	detail := widget.NewLabel("detail")
	detail.Truncation = fyne.TextTruncateEllipsis
	downloadBtn := widget.NewButton("Download", nil)
	return container.NewBorder(nil, nil, nil, downloadBtn, container.NewVBox(title, detail))
}

// updateEntryRow binds a row to the filtered entry at the given index
func (bd *BrowserDialog) updateEntryRow(id widget.ListItemID, obj fyne.CanvasObject) {
	if id >= len(bd.filtered) {
		return
	}
	entry := bd.filtered[id]

	row := obj.(*fyne.Container)
	labels := row.Objects[0].(*fyne.Container)
	title := labels.Objects[0].(*widget.Label)
	detail := labels.Objects[1].(*widget.Label)
	downloadBtn := row.Objects[1].(*widget.Button)

	title.SetText(entry.descriptor.Title)
	detail.SetText(entryDetail(entry.descriptor))
	downloadBtn.OnTapped = func() { bd.onDownload(entry) }
}

// loadIndex fetches the package list and each package's descriptor.
// Runs off the UI thread; all widget updates go through fyne.Do.
func (bd *BrowserDialog) loadIndex() {
	ctx := context.Background()

	packages, err := bd.svc.Client.ListPackages(ctx)
	if err != nil {
		bd.svc.Log.Warn("Failed to load package index", zap.Error(err))
		fyne.Do(func() {
			bd.statusLabel.SetText("Could not reach the online library")
			dialog.ShowError(fmt.Errorf("online library unavailable: %w", err), bd.window)
		})
		return
	}

	entries := make([]browserEntry, 0, len(packages))
	for _, pkg := range packages {
		text, err := bd.svc.Client.FetchText(ctx, pkg.DownloadURL)
		if err != nil {
			bd.svc.Log.Warn("Skipping package with unreadable descriptor",
				zap.String("name", pkg.Name), zap.Error(err))
			continue
		}
		entries = append(entries, browserEntry{
			remote:     pkg,
			descriptor: soundpack.ParseDescriptor(text),
		})
	}

	fyne.Do(func() {
		bd.entries = entries
		bd.statusLabel.SetText(fmt.Sprintf("%d packages available", len(entries)))
		bd.applyFilter()
	})
}

// applyFilter narrows the visible entries to those matching the search text
func (bd *BrowserDialog) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(bd.searchEntry.Text))
	if query == "" {
		bd.filtered = bd.entries
	} else {
		bd.filtered = nil
		for _, entry := range bd.entries {
			if matchesQuery(entry.descriptor, query) {
				bd.filtered = append(bd.filtered, entry)
			}
		}
	}
	bd.entryList.Refresh()
}

// onDownload installs the selected package in the background
func (bd *BrowserDialog) onDownload(entry browserEntry) {
	bd.statusLabel.SetText(fmt.Sprintf("Installing %q...", entry.descriptor.Title))

	go func() {
		installed, err := bd.svc.Installer.Install(context.Background(), entry.descriptor)
		if err != nil {
			bd.svc.Log.Warn("Package install failed",
				zap.String("package", entry.remote.Name),
				zap.String("title", entry.descriptor.Title),
				zap.Error(err))
			fyne.Do(func() {
				bd.statusLabel.SetText(fmt.Sprintf("%d packages available", len(bd.entries)))
				dialog.ShowError(fmt.Errorf("install failed: %w", err), bd.window)
			})
			return
		}
		fyne.Do(func() {
			bd.statusLabel.SetText(fmt.Sprintf("Installed %q", installed.Title))
		})
	}()
}

// matchesQuery reports whether the descriptor matches the search text
func matchesQuery(desc model.PackageDescriptor, query string) bool {
	if strings.Contains(strings.ToLower(desc.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(desc.Author), query) {
		return true
	}
	for _, tag := range desc.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// entryDetail formats the secondary line for a browser row
func entryDetail(desc model.PackageDescriptor) string {
	parts := []string{}
	if desc.Author != "" {
		parts = append(parts, "by "+desc.Author)
	}
	if len(desc.Tags) > 0 {
		parts = append(parts, strings.Join(desc.Tags, ", "))
	}
	if len(parts) == 0 {
		return desc.Description
	}
	return strings.Join(parts, "  ·  ")
}
