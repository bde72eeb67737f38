package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/tenantdesk/internal/application/subscription/dto"
	"github.com/orris-inc/tenantdesk/internal/application/subscription/usecases"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
	"github.com/orris-inc/tenantdesk/internal/shared/logger"
	"github.com/orris-inc/tenantdesk/internal/shared/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TransactionHandler struct {
	listUC   listTransactionsUseCase
	exportUC exportTransactionsUseCase
	logger   logger.Interface
}

func NewTransactionHandler(listUC listTransactionsUseCase, exportUC exportTransactionsUseCase, logger logger.Interface) *TransactionHandler {
	return &TransactionHandler{listUC: listUC, exportUC: exportUC, logger: logger}
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	page := utils.NormalizePagination(req.Page, req.PageSize)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListTransactionsQuery{
		Principal:      principal(c),
		SubscriptionID: req.SubscriptionID,
		Page:           page.Page,
		PageSize:       page.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Transactions, result.Total, result.Page, result.PageSize)
}

// ExportTransactions streams the caller's visible transactions as a
// spreadsheet. The workbook is built in memory so that a failure can still
// be reported as JSON.
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	var buf bytes.Buffer
	n, err := h.exportUC.Execute(c.Request.Context(), usecases.ExportTransactionsQuery{
		Principal:      principal(c),
		SubscriptionID: utils.QueryUint(c, "subscription_id"),
	}, &buf)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", biztime.Today().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("X-Total-Count", fmt.Sprint(n))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
