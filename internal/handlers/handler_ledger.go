package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves incomes, expenses and investments. Each create and
// delete moves the linked account balance by the converted amount.
type ledgerHandler struct {
	incomes     portssvc.IncomeSvcFacade
	expenses    portssvc.ExpenseSvcFacade
	investments portssvc.InvestmentSvcFacade
}

func registerLedgerRoutes(rg *gin.RouterGroup, incomes portssvc.IncomeSvcFacade, expenses portssvc.ExpenseSvcFacade, investments portssvc.InvestmentSvcFacade) {
	h := &ledgerHandler{incomes: incomes, expenses: expenses, investments: investments}

	rg.POST("/incomes", h.createIncome)
	rg.DELETE("/incomes/:id", h.deleteIncome)
	rg.POST("/expenses", h.createExpense)
	rg.DELETE("/expenses/:id", h.deleteExpense)
	rg.POST("/investments", h.createInvestment)
	rg.DELETE("/investments/:id", h.deleteInvestment)
}

// createIncome godoc
// @Summary Record an income
// @Description Credits the linked account with the amount converted into the account currency
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   income body dto.CreateIncomeRequest true "Income details"
// @Success 201 {object} domain.Income
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 422 {object} dto.ErrorResponse "Unsupported currency"
// @Security BearerAuth
// @Router /incomes [post]
func (h *ledgerHandler) createIncome(c *gin.Context) {
	var req dto.CreateIncomeRequest
	if !bindJSON(c, &req, "CreateIncome") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	income, err := h.incomes.CreateIncome(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create income")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Income created", slog.String("income_id", income.IncomeID))
	c.JSON(http.StatusCreated, income)
}

// deleteIncome godoc
// @Summary Delete an income
// @Description Reverses the balance change with a fresh conversion and removes the audit trail
// @Tags ledger
// @Param   id path string true "Income ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Income not found"
// @Security BearerAuth
// @Router /incomes/{id} [delete]
func (h *ledgerHandler) deleteIncome(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.incomes.DeleteIncome(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete income")
		return
	}
	c.Status(http.StatusNoContent)
}

// createExpense godoc
// @Summary Record an expense
// @Description Debits the linked account. Credit card expenses default to Unpaid.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} domain.Expense
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /expenses [post]
func (h *ledgerHandler) createExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindJSON(c, &req, "CreateExpense") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	expense, err := h.expenses.CreateExpense(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create expense")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expense created", slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, expense)
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags ledger
// @Param   id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Expense not found"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ledgerHandler) deleteExpense(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.expenses.DeleteExpense(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// createInvestment godoc
// @Summary Record an investment
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   investment body dto.CreateInvestmentRequest true "Investment details"
// @Success 201 {object} domain.Investment
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /investments [post]
func (h *ledgerHandler) createInvestment(c *gin.Context) {
	var req dto.CreateInvestmentRequest
	if !bindJSON(c, &req, "CreateInvestment") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	investment, err := h.investments.CreateInvestment(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create investment")
		return
	}
	c.JSON(http.StatusCreated, investment)
}

// deleteInvestment godoc
// @Summary Delete an investment
// @Tags ledger
// @Param   id path string true "Investment ID"
// @Success 204
// @Security BearerAuth
// @Router /investments/{id} [delete]
func (h *ledgerHandler) deleteInvestment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.investments.DeleteInvestment(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete investment")
		return
	}
	c.Status(http.StatusNoContent)
}
