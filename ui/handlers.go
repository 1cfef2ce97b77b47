package ui

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"telcochurn/adapters/excel"
	"telcochurn/domain/dataset"
	"telcochurn/internal/errors"
	"telcochurn/internal/visualization"
)

type page struct {
	Title   string
	Heading string
	Active  string
	Body    template.HTML
	Details template.HTML
	KDE     bool
}

func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "home.html", page{
		Title:   "Home - " + Title,
		Heading: Title,
		Active:  "home",
		Body:    renderMarkdown(homeIntro),
		Details: renderMarkdown(homeInputs),
	})
}

func (a *App) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "analysis.html", page{
		Title:   "Customer Behaviour Analysis",
		Heading: "Customer Behaviour Analysis",
		Active:  "analysis",
		Body:    renderMarkdown(analysisBody),
		KDE:     a.config.DatasetFile != "",
	})
}

func (a *App) handleAbout(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "about.html", page{
		Title:   "About",
		Heading: "About",
		Active:  "about",
		Body:    renderMarkdown(aboutBody),
	})
}

// handleKDE returns density curves of one numeric column of the configured
// dataset, split by hue
func (a *App) handleKDE(w http.ResponseWriter, r *http.Request) {
	if a.config.DatasetFile == "" {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "no dataset configured",
		})
		return
	}

	table, err := a.dataset()
	if err != nil {
		a.logger.Error("failed to load dataset %s: %v", a.config.DatasetFile, err)
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	x := q.Get("x")
	if x == "" {
		x = "tenure"
	}
	hue := q.Get("hue")
	if _, ok := q["hue"]; !ok {
		hue = "Churn"
	}
	points := 0
	if raw := q.Get("points"); raw != "" {
		if points, err = strconv.Atoi(raw); err != nil {
			writeError(w, errors.InvalidInput("points must be an integer"))
			return
		}
	}

	curves, err := visualization.KDE(table, x, hue, points)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"x":       x,
		"hue":     hue,
		"curves":  curves,
	})
}

// dataset loads the configured file once. Blank TotalCharges cells must not
// turn the column categorical, so the lenient reader is used.
func (a *App) dataset() (*dataset.Table, error) {
	a.datasetOnce.Do(func() {
		reader := excel.NewDataReaderWithConfig(a.config.DatasetFile, excel.LenientReaderConfig())
		a.datasetTable, a.datasetErr = reader.ReadTable()
	})
	return a.datasetTable, a.datasetErr
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), map[string]interface{}{
		"success": false,
		"message": err.Error(),
	})
}
