package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// ListConversionsParams defines query parameters for the conversion audit endpoint.
// When TransactionID is set the lookup is by transaction and paging is ignored.
type ListConversionsParams struct {
	TransactionID   string  `form:"transactionId"`
	TransactionType string  `form:"transactionType" binding:"required_with=TransactionID,omitempty,oneof=income expense investment goal transfer"`
	Limit           int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken       *string `form:"nextToken"`
}

type TransactionConversionResponse struct {
	ConversionID    string                 `json:"conversionID"`
	TransactionID   string                 `json:"transactionID"`
	TransactionType domain.TransactionType `json:"transactionType"`
	ConversionResponse
	CreatedAt time.Time `json:"createdAt"`
}

type ListConversionsResponse struct {
	Conversions []TransactionConversionResponse `json:"conversions"`
	NextToken   *string                         `json:"nextToken,omitempty"`
}

func ToListConversionsResponse(items []domain.TransactionConversion, nextToken *string) ListConversionsResponse {
	res := make([]TransactionConversionResponse, len(items))
	for i := range items {
		res[i] = TransactionConversionResponse{
			ConversionID:       items[i].ConversionID,
			TransactionID:      items[i].TransactionID,
			TransactionType:    items[i].TransactionType,
			ConversionResponse: ToConversionResponse(&items[i].ConversionResult),
			CreatedAt:          items[i].CreatedAt,
		}
	}
	return ListConversionsResponse{Conversions: res, NextToken: nextToken}
}
