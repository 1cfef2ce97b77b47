package api

import (
	"net/http"
	"strconv"
	"strings"

	"telcochurn/adapters/excel"
	"telcochurn/app"
	"telcochurn/internal/errors"
	"telcochurn/models"

	"github.com/gin-gonic/gin"
)

const (
	welcomeHTML     = "<h3>This is the Backend for My Modeling Program</h3>"
	predictInfoHTML = "<p>Please use the POST method to predict <em>inference model</em></p>"
)

func (b *Backend) handleWelcome(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(welcomeHTML))
}

func (b *Backend) handlePredictInfo(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(predictInfoHTML))
}

// handlePredict scores one customer. Every failure answers 400 with success=false.
func (b *Backend) handlePredict(c *gin.Context) {
	var record models.CustomerRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		b.predictFailed(c, err)
		return
	}

	p, err := b.predictions.Predict(c.Request.Context(), record)
	if err != nil {
		b.predictFailed(c, err)
		return
	}

	result := p.Result()
	b.metrics.predictions.WithLabelValues(result.Class).Inc()
	c.JSON(http.StatusOK, models.PredictResponse{
		Success: true,
		Result:  result,
	})
}

func (b *Backend) predictFailed(c *gin.Context, err error) {
	b.logger.Warn("prediction rejected: %v", err)
	b.metrics.predictionErrors.Inc()
	c.JSON(http.StatusBadRequest, models.PredictResponse{
		Success: false,
		Message: err.Error(),
	})
}

// handleAnalyze prepares an uploaded csv or xlsx dataset and returns its report
func (b *Backend) handleAnalyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, b.config.MaxUploadBytes)

	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, errors.InvalidInput("multipart field \"file\" is required"))
		return
	}

	fold := b.config.Fold
	if raw := c.PostForm("fold"); raw != "" {
		fold, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, errors.InvalidInput("fold must be a number"))
			return
		}
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, errors.Wrap(err, "open upload"))
		return
	}
	defer f.Close()

	table, err := excel.NewDataReader(header.Filename).ReadTableFrom(f)
	if err != nil {
		respondError(c, errors.WithCode(errors.CodeInvalidInput, errors.Wrapf(err, "read %s", header.Filename)))
		return
	}

	// An explicit target must exist; the configured default is used only when present.
	target, explicit := c.GetPostForm("target")
	if !explicit {
		target = b.config.Target
		if !table.HasColumn(target) {
			target = ""
		}
	}

	result, err := b.preparation.Prepare(c.Request.Context(), app.PreparationRequest{
		Source:     header.Filename,
		Table:      table,
		Target:     strings.TrimSpace(target),
		IDColumn:   b.config.IDColumn,
		Fold:       fold,
		Exceptions: splitList(c.PostForm("exceptions")),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	b.metrics.preparations.Inc()
	b.logger.Info("analyzed %s: %d -> %d rows (run %s)", header.Filename,
		result.Report.RowsBefore, result.Report.RowsAfter, result.Report.RunID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"report":  result.Report,
	})
}

func (b *Backend) handleListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		respondError(c, errors.InvalidInput("limit must be a positive integer"))
		return
	}

	runs, err := b.preparation.ListReports(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if runs == nil {
		runs = []*models.RemediationRun{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"runs":    runs,
	})
}

func (b *Backend) handleGetRun(c *gin.Context) {
	run, err := b.preparation.GetReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"run":     run,
	})
}

func respondError(c *gin.Context, err error) {
	c.JSON(errors.HTTPStatus(err), gin.H{
		"success": false,
		"message": err.Error(),
	})
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
