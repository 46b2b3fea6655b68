package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/importer"
	amqp "github.com/rabbitmq/amqp091-go"
)

// readAnnualPlan accepts either a JSON body with the raw grid or a
// multipart upload with an xlsx workbook in the "file" field and the
// position name in the "position" field.
func (h *Handler) readAnnualPlan(r *http.Request) ([][]string, string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(contentType, "application/json") {
		var req struct {
			PositionName string     `json:"positionName"`
			Grid         [][]string `json:"grid"`
		}
		if err := h.readJSON(r, &req); err != nil {
			return nil, "", err
		}
		return req.Grid, req.PositionName, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, "", errors.New("file field missing, upload an xlsx workbook or send JSON")
	}
	defer file.Close()

	grid, err := importer.ReadGrid(file)
	if err != nil {
		return nil, "", err
	}

	return grid, r.FormValue("position"), nil
}

func (h *Handler) ValidateAnnualPlan(w http.ResponseWriter, r *http.Request) {
	grid, _, err := h.readAnnualPlan(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	result := importer.Validate(grid, h.config.Rotation.CycleLength)

	h.successResponse(w, r, "annual plan checked", result)
}

func (h *Handler) ImportAnnualPlan(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	grid, positionName, err := h.readAnnualPlan(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	result, err := h.importer.Import(grid, positionName, myInfo.ID)
	if err != nil {
		var verr *importer.ValidationError
		if errors.As(err, &verr) {
			h.publishImportReport(myInfo, positionName, string(domain.ImportStatusFailed), 0, verr.Errors, nil)
			h.errorListResponse(w, r, "annual plan rejected", verr.Errors)
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.publishImportReport(myInfo, positionName, string(domain.ImportStatusSuccess), result.RecordsProcessed, nil, result.Warnings)

	h.successResponse(w, r, "annual plan imported", result)
}

func (h *Handler) GetAllImportLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.repository.GetAllImportLogs()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "import logs listed", logs)
}

// publishImportReport queues the audit summary mail for the acting planner.
// The notifier worker consumes the queue; a publish failure only loses the
// mail, never the import.
func (h *Handler) publishImportReport(actor *domain.User, positionName, status string, records int, errs, warnings []string) {
	mailMessage := domain.MailMessage{
		Type: "import_report",
		To:   actor.Email,
		Data: domain.ImportReportMailData{
			PositionName:     positionName,
			Status:           status,
			RecordsProcessed: records,
			Errors:           errs,
			Warnings:         warnings,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	_ = h.mailChannel.PublishWithContext(
		ctx,
		"",
		"mail_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
