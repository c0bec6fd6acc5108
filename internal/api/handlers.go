package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/ynab-card-sync/internal/api/dto"
	"github.com/eshaffer321/ynab-card-sync/internal/application/sync"
	"github.com/eshaffer321/ynab-card-sync/internal/clients/ynab"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/card"
	"github.com/eshaffer321/ynab-card-sync/internal/domain/matcher"
)

// reconcile handles POST /api/reconcile.
func (s *Server) reconcile(c *gin.Context) {
	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	entries := make([]card.RawEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, card.RawEntry{
			Type:        e.Type,
			Date:        e.Date,
			Description: e.Description,
			Status:      e.Status,
			Amount:      e.Amount,
		})
	}

	recon, err := s.service.Reconcile(c.Request.Context(), entries, sync.Options{
		DateTolerance: req.DateTolerance,
	})
	if err != nil {
		s.writeReconcileError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReconcileResponse(recon))
}

// commit handles POST /api/commit.
func (s *Server) commit(c *gin.Context) {
	var req dto.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	sel := sync.Selection{}
	for _, u := range req.Updates {
		sel.Updates = append(sel.Updates, matcher.Update{ID: u.ID, NewMemo: u.Memo})
	}
	for _, cr := range req.Creates {
		day, err := time.Parse("2006-01-02", cr.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid create date "+cr.Date))
			return
		}
		sel.Creates = append(sel.Creates, card.Transaction{
			Date:        day,
			Amount:      cr.Amount,
			Payee:       cr.Payee,
			Description: cr.Description,
			Status:      cr.Status,
		})
	}

	result, err := s.service.Commit(c.Request.Context(), sel)
	if err != nil {
		if result == nil {
			result = &sync.CommitResult{}
		}
		s.logger.Error("commit failed", "error", err)
		// Partial counts still go back so the operator knows what has
		// already been written.
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   dto.LedgerError(err.Error()),
			"updated": result.Updated,
			"created": result.Created,
			"run_id":  result.RunID,
		})
		return
	}

	c.JSON(http.StatusOK, dto.CommitResponse{
		RunID:   result.RunID,
		Updated: result.Updated,
		Created: result.Created,
	})
}

// listRuns handles GET /api/runs.
func (s *Server) listRuns(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusOK, []dto.RunResponse{})
		return
	}

	runs, err := s.repo.ListRuns(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	resp := make([]dto.RunResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, dto.RunResponse{
			ID:           run.ID,
			StartedAt:    run.StartedAt.Format(time.RFC3339),
			FinishedAt:   run.FinishedAt.Format(time.RFC3339),
			Updated:      run.Updated,
			Created:      run.Created,
			Status:       run.Status,
			ErrorMessage: run.ErrorMessage,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) writeReconcileError(c *gin.Context, err error) {
	var parseErr *card.ParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusUnprocessableEntity, dto.ParseErrorResponse(parseErr.Error()))
		return
	}

	var apiErr *ynab.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadGateway, dto.LedgerError(apiErr.Error()))
		return
	}

	s.logger.Error("reconcile failed", "error", err)
	c.JSON(http.StatusInternalServerError, dto.InternalError())
}

func toReconcileResponse(recon *sync.Reconciliation) dto.ReconcileResponse {
	resp := dto.ReconcileResponse{
		Updates:         make([]dto.UpdateResponse, 0, len(recon.Result.Updates)),
		UnmatchedCard:   make([]dto.CardTxResponse, 0, len(recon.Result.UnmatchedCard)),
		UnmatchedYnab:   make([]dto.YnabTxResponse, 0, len(recon.Result.UnmatchedLedger)),
		SkippedPayments: make([]dto.CardTxResponse, 0, len(recon.Result.SkippedPayments)),
		DateTolerance:   recon.DateTolerance,
	}

	for _, u := range recon.Result.Updates {
		resp.Updates = append(resp.Updates, dto.UpdateResponse{
			ID:      u.ID,
			NewMemo: u.NewMemo,
			OldMemo: memoText(u.Ledger.Memo),
			Card:    toCardResponse(u.Card),
			Ynab:    toYnabResponse(u.Ledger),
		})
	}
	for _, ct := range recon.Result.UnmatchedCard {
		resp.UnmatchedCard = append(resp.UnmatchedCard, toCardResponse(ct))
	}
	for _, lt := range recon.Result.UnmatchedLedger {
		resp.UnmatchedYnab = append(resp.UnmatchedYnab, toYnabResponse(lt))
	}
	for _, ct := range recon.Result.SkippedPayments {
		resp.SkippedPayments = append(resp.SkippedPayments, toCardResponse(ct))
	}

	return resp
}

func toCardResponse(ct card.Transaction) dto.CardTxResponse {
	return dto.CardTxResponse{
		Type:        ct.Type,
		Date:        ct.DateString(),
		Payee:       ct.Payee,
		Description: ct.Description,
		Status:      ct.Status,
		Amount:      ct.Amount,
	}
}

func toYnabResponse(lt ynab.Transaction) dto.YnabTxResponse {
	return dto.YnabTxResponse{
		ID:        lt.ID,
		Date:      lt.Date.Format("2006-01-02"),
		Amount:    lt.Amount,
		Memo:      memoText(lt.Memo),
		PayeeName: lt.PayeeName,
		Cleared:   lt.Cleared,
	}
}

func memoText(memo *string) string {
	if memo == nil {
		return ""
	}
	return *memo
}
