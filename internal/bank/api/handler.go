package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/neuraread/banking-backend/internal/bank/domain"
	"github.com/neuraread/banking-backend/internal/bank/service"
)

// IdentityKey is where the identity middleware leaves the caller's user id.
const IdentityKey = "x-user-id"

// LedgerPoster posts transfers.
type LedgerPoster interface {
	Post(ctx context.Context, req service.TransferRequest) (*service.PostingResult, error)
}

// AccountProvider provisions accounts and serves owner-scoped reads.
type AccountProvider interface {
	Provision(ctx context.Context, req service.ProvisionRequest) (*domain.Account, error)
	BankDetails(ctx context.Context, userID int64) (*service.BankDetails, error)
	UserData(ctx context.Context, userID int64) (*service.UserData, error)
	CreationStatus(ctx context.Context, userID int64) (bool, error)
}

// HistoryLister projects an owner's sent postings.
type HistoryLister interface {
	ListSent(ctx context.Context, userID int64) ([]service.HistoryEntry, error)
}

type BankHandler struct {
	ledger   LedgerPoster
	accounts AccountProvider
	history  HistoryLister
	logger   *zap.Logger
}

func NewBankHandler(ledger LedgerPoster, accounts AccountProvider, history HistoryLister, logger *zap.Logger) *BankHandler {
	return &BankHandler{ledger: ledger, accounts: accounts, history: history, logger: logger}
}

// RegisterRoutes wires the module's endpoints onto the versioned group.
func (h *BankHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/transactions", h.CreateTransaction)
	r.GET("/transactions/history", h.GetTransactionHistory)
	r.POST("/bank-accounts", h.CreateBankAccount)
	r.GET("/bank-accounts/me", h.GetBankDetails)
	r.GET("/users/me", h.GetUserData)
	r.GET("/users/me/account-status", h.GetAccountStatus)
}

// CreateTransaction handles POST /transactions.
func (h *BankHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request: " + err.Error()})
		return
	}

	svcReq := service.TransferRequest{
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      req.Amount,
		Kind:        domain.TransferKind(req.TransactionType),
		Scope:       domain.TransferScope(req.BankType),
		Note:        req.Note,
	}
	if req.ExternalBankDetails != nil {
		svcReq.ExternalDetails = &domain.ExternalBankDetails{
			AccountNumber: req.ExternalBankDetails.AccountNumber,
			AccountName:   req.ExternalBankDetails.AccountName,
			BankName:      req.ExternalBankDetails.BankName,
			IfscCode:      req.ExternalBankDetails.IfscCode,
		}
	}

	result, err := h.ledger.Post(c.Request.Context(), svcReq)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":          "success",
		"message":         "Transaction successful",
		"transaction":     toTransactionResp(result.Posting),
		"senderBalance":   result.SenderBalance,
		"receiverBalance": result.ReceiverBalance,
	})
}

// CreateBankAccount handles POST /bank-accounts.
func (h *BankHandler) CreateBankAccount(c *gin.Context) {
	var req CreateBankAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request: " + err.Error()})
		return
	}

	account, err := h.accounts.Provision(c.Request.Context(), service.ProvisionRequest{
		UserID:      req.UserID,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		PhoneNo:     req.PhoneNo,
		Address:     req.Address,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Bank account created successfully.",
		"data": BankAccountResp{
			AccountName:   account.AccountName,
			BranchName:    account.BranchName,
			AccountNumber: account.AccountNumber,
			IfscCode:      account.IfscCode,
		},
	})
}

// GetBankDetails handles GET /bank-accounts/me.
func (h *BankHandler) GetBankDetails(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	details, err := h.accounts.BankDetails(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Bank account details retrieved successfully.",
		"bankDetails": BankDetailsResp{
			FirstName:     details.FirstName,
			LastName:      details.LastName,
			AccountName:   details.AccountName,
			BranchName:    details.BranchName,
			AccountNumber: details.AccountNumber,
			IfscCode:      details.IfscCode,
			Balance:       details.Balance,
			CreatedAt:     details.CreatedAt,
		},
	})
}

// GetUserData handles GET /users/me.
func (h *BankHandler) GetUserData(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	data, err := h.accounts.UserData(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User data retrieved successfully.",
		"data": gin.H{
			"firstName": data.FirstName,
			"lastName":  data.LastName,
			"email":     data.Email,
		},
	})
}

// GetAccountStatus handles GET /users/me/account-status.
func (h *BankHandler) GetAccountStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	created, err := h.accounts.CreationStatus(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Account creation status retrieved successfully.",
		"data":    gin.H{"isAccountCreated": created},
	})
}

// GetTransactionHistory handles GET /transactions/history.
func (h *BankHandler) GetTransactionHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.history.ListSent(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": entries,
	})
}

func currentUserID(c *gin.Context) (int64, bool) {
	id := c.GetInt64(IdentityKey)
	if id == 0 {
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "Missing caller identity."})
		return 0, false
	}
	return id, true
}

// respondError translates the domain taxonomy into HTTP. Anything outside
// the taxonomy collapses to a 500 without leaking internals.
func (h *BankHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Amount must be a valid positive number."})
	case errors.Is(err, domain.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Insufficient balance."})
	case errors.Is(err, domain.ErrExternalDetailsRequired):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "External bank details are required."})
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Account not found."})
	case errors.Is(err, domain.ErrOwnerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found."})
	case errors.Is(err, domain.ErrOwnerBlocked):
		c.JSON(http.StatusForbidden, gin.H{"status": "error", "message": "User is blocked."})
	case errors.Is(err, domain.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "Bank account already exists for this user."})
	case errors.Is(err, domain.ErrBalanceConflict):
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "Account was modified concurrently, please retry."})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Transaction failed"})
	}
}

func toTransactionResp(p *domain.Posting) TransactionResp {
	resp := TransactionResp{
		TransactionID:       p.PostingID,
		FromAccount:         p.SourceAccountID,
		Amount:              p.Amount,
		TransactionType:     p.Kind,
		BankType:            p.Scope,
		ExternalBankDetails: p.ExternalDetails,
		Note:                p.Note,
		Status:              p.Status,
		TransactionDate:     p.PostedAt,
		Charges:             p.Fee,
	}
	switch {
	case p.DestinationAccountID != nil:
		resp.ToAccount = *p.DestinationAccountID
	case p.ExternalDetails != nil:
		resp.ToAccount = p.ExternalDetails.AccountNumber
	}
	return resp
}
