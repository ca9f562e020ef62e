package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Pricing errors.
	ErrEmptyOrder       = errors.New("order has no line items")
	ErrNegativeDiscount = errors.New("discount is negative")
	ErrDiscountTooLarge = errors.New("discount exceeds subtotal")

	// * Ledger errors.
	ErrOrderFullyPaid      = errors.New("order already fully paid")
	ErrOrderNotPayable     = errors.New("order does not accept payments in its current status")
	ErrAdvanceTooSmall     = errors.New("first installment is below the minimum advance")
	ErrOverpayment         = errors.New("payment exceeds the remaining balance")
	ErrNonPositivePayment  = errors.New("payment amount must be positive")
	ErrBankDetailsRequired = errors.New("bank name, branch and routing number are required")
	ErrTrxIDRequired       = errors.New("transaction reference id is required")
	ErrUnknownMedium       = errors.New("unknown payment medium")

	// * Status errors.
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrOrderTerminal     = errors.New("order is in a terminal status")
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// * Stock errors.
	ErrInsufficientStock = errors.New("insufficient stock")
)
