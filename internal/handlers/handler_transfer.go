package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type transferHandler struct {
	transfers portssvc.TransferSvcFacade
	loans     portssvc.LoanSvcFacade
}

func registerTransferRoutes(rg *gin.RouterGroup, transfers portssvc.TransferSvcFacade, loans portssvc.LoanSvcFacade) {
	h := &transferHandler{transfers: transfers, loans: loans}

	t := rg.Group("/transfers")
	{
		t.POST("", h.createTransfer)
		t.POST("/international", h.createInternationalTransfer)
		t.POST("/breakdown", h.previewBreakdown)
		t.POST("/international-amount", h.internationalAmount)
	}

	l := rg.Group("/loans")
	{
		l.POST("", h.createLoan)
		l.POST("/:id/repayments", h.repayLoan)
	}
}

// createTransfer godoc
// @Summary Move money between two accounts
// @Description The amount is in the reference currency and converted separately into each account currency. A Debt Repayment into a credit card settles its unpaid expenses; with a loanID it also records a loan repayment.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} domain.Transfer
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Account or loan not found"
// @Failure 503 {object} dto.ErrorResponse "No rate table available"
// @Security BearerAuth
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	var req dto.CreateTransferRequest
	if !bindJSON(c, &req, "CreateTransfer") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	transfer, err := h.transfers.CreateTransfer(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create transfer")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transfer created", slog.String("transfer_id", transfer.TransferID))
	c.JSON(http.StatusCreated, transfer)
}

// createInternationalTransfer godoc
// @Summary Send money abroad
// @Description Debits the source amount plus any source-currency extra fee, credits the destination with the breakdown total and books the fees as a Bank Fees expense
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateInternationalTransferRequest true "Transfer and fee details"
// @Success 201 {object} domain.Transfer
// @Failure 400 {object} dto.ErrorResponse "Invalid input or invalid breakdown"
// @Security BearerAuth
// @Router /transfers/international [post]
func (h *transferHandler) createInternationalTransfer(c *gin.Context) {
	var req dto.CreateInternationalTransferRequest
	if !bindJSON(c, &req, "CreateInternationalTransfer") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	transfer, err := h.transfers.CreateInternationalTransfer(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create international transfer")
		return
	}
	c.JSON(http.StatusCreated, transfer)
}

// previewBreakdown godoc
// @Summary Preview a transfer fee breakdown
// @Description Invalid inputs yield isValid=false with an error message rather than an HTTP error
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   request body dto.TransferBreakdownRequest true "Amount, currencies and fees"
// @Success 200 {object} domain.TransferBreakdown
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /transfers/breakdown [post]
func (h *transferHandler) previewBreakdown(c *gin.Context) {
	var req dto.TransferBreakdownRequest
	if !bindJSON(c, &req, "PreviewBreakdown") {
		return
	}

	breakdown, err := h.transfers.PreviewBreakdown(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to calculate breakdown")
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// internationalAmount godoc
// @Summary Calculate the destination amount with a fixed markup
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   request body dto.InternationalAmountRequest true "Amount, rate and markup"
// @Success 200 {object} domain.InternationalTransferAmount
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /transfers/international-amount [post]
func (h *transferHandler) internationalAmount(c *gin.Context) {
	var req dto.InternationalAmountRequest
	if !bindJSON(c, &req, "InternationalAmount") {
		return
	}

	res, err := h.transfers.CalculateInternationalAmount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to calculate international amount")
		return
	}
	c.JSON(http.StatusOK, res)
}

// createLoan godoc
// @Summary Record a loan
// @Description With a linked account the principal is credited and a Not Settled loan income is recorded
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.CreateLoanRequest true "Loan details"
// @Success 201 {object} domain.Loan
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /loans [post]
func (h *transferHandler) createLoan(c *gin.Context) {
	var req dto.CreateLoanRequest
	if !bindJSON(c, &req, "CreateLoan") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	loan, err := h.loans.CreateLoan(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create loan")
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// repayLoan godoc
// @Summary Repay part of a loan
// @Description Decrements the remaining balance (floored at zero), debits the linked account and records a Loan Repayment expense. The loan closes at zero.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   id path string true "Loan ID"
// @Param   repayment body dto.RepayLoanRequest true "Repayment amount"
// @Success 201 {object} domain.LoanRepaymentResult
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or loan already closed"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Security BearerAuth
// @Router /loans/{id}/repayments [post]
func (h *transferHandler) repayLoan(c *gin.Context) {
	var req dto.RepayLoanRequest
	if !bindJSON(c, &req, "RepayLoan") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	res, err := h.loans.RepayLoan(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to repay loan")
		return
	}
	c.JSON(http.StatusCreated, res)
}
