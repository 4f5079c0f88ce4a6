package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"podmarket/domain/catalog"
	"podmarket/domain/orders"
	"podmarket/domain/shared"
	"podmarket/domain/shops"
)

func TestFromDomainErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"nil", nil, "", 0},
		{"slug taken", shops.NewSlugTakenError("sunset"), CodeSlugTaken, http.StatusConflict},
		{"shop closed", shops.NewShopClosedError("7"), CodeShopClosed, http.StatusUnprocessableEntity},
		{"design in use", catalog.NewDesignInUseError("3"), CodeDesignInUse, http.StatusConflict},
		{"product unavailable", orders.NewProductUnavailableError("1"), CodeProductUnavailable, http.StatusUnprocessableEntity},
		{"invalid transition", orders.NewInvalidTransitionError("1", orders.StatusPaid, orders.StatusCancelled), CodeInvalidOrderState, http.StatusUnprocessableEntity},
		{"invalid identifier", shared.NewInvalidIdentifierError("product", "007"), CodeInvalidIdentifier, http.StatusBadRequest},
		{"not found", shared.NewNotFoundError("shop"), CodeNotFound, http.StatusNotFound},
		{"constraint violation", shared.NewConstraintViolationError("product", "design_id", "missing parent"), CodeConflict, http.StatusConflict},
		{"validation", shared.NewValidationError("shop", "slug", "bad slug"), CodeValidation, http.StatusBadRequest},
		{"storage unavailable", shared.NewStorageUnavailableError("order", stderrors.New("connection refused")), CodeStorageUnavailable, http.StatusServiceUnavailable},
		{"unknown", stderrors.New("mystery"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromDomainError(tc.err)
			if tc.err == nil {
				if appErr != nil {
					t.Fatalf("FromDomainError(nil) = %v", appErr)
				}
				return
			}
			if appErr.Code != tc.code {
				t.Errorf("code = %s, want %s", appErr.Code, tc.code)
			}
			if got := appErr.HTTPStatusCode(); got != tc.status {
				t.Errorf("status = %d, want %d", got, tc.status)
			}
		})
	}
}

func TestFromDomainErrorPassesThroughAppError(t *testing.T) {
	original := NotFound("no such shop")
	if got := FromDomainError(original); got != original {
		t.Errorf("AppError was re-wrapped: %v", got)
	}
}

func TestFromDomainErrorPreservesChain(t *testing.T) {
	err := shops.NewShopClosedError("7")
	appErr := FromDomainError(err)
	if !stderrors.Is(appErr, shops.ErrShopClosed) {
		t.Error("wrapped AppError lost the domain sentinel")
	}
}

func TestIsChecksCode(t *testing.T) {
	err := FromDomainError(shared.NewNotFoundError("order"))
	if !Is(err, CodeNotFound) {
		t.Error("Is(CodeNotFound) = false")
	}
	if Is(err, CodeConflict) {
		t.Error("Is(CodeConflict) = true")
	}
	if Is(stderrors.New("plain"), CodeNotFound) {
		t.Error("plain error matched a code")
	}
}
