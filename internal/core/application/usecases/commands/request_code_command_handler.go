package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CodePolicy bounds one-time code issuance.
type CodePolicy struct {
	TTL         time.Duration
	MaxRequests int
	Window      time.Duration
}

// DefaultCodePolicy: codes live five minutes, at most five requests per phone per hour.
var DefaultCodePolicy = CodePolicy{
	TTL:         5 * time.Minute,
	MaxRequests: 5,
	Window:      time.Hour,
}

const codeDigits = 6

// RequestCodeCommandHandler rate-limits, stores and sends one-time login codes.
//
// Example:
//
//	handler := NewRequestCodeCommandHandler(codes, limiter, sender, DefaultCodePolicy)
//	cmd, _ := NewRequestCodeCommand("+998901234567")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrRateLimited) {
//	    // 429
//	}
type RequestCodeCommandHandler struct {
	codes   ports.CodeStore
	limiter ports.RateLimiter
	sender  ports.CodeSender
	policy  CodePolicy
}

func NewRequestCodeCommandHandler(
	codes ports.CodeStore,
	limiter ports.RateLimiter,
	sender ports.CodeSender,
	policy CodePolicy,
) RequestCodeCommandHandler {
	return RequestCodeCommandHandler{
		codes:   codes,
		limiter: limiter,
		sender:  sender,
		policy:  policy,
	}
}

func (h RequestCodeCommandHandler) Handle(ctx context.Context, command RequestCodeCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	phone := command.Phone()

	allowed, err := h.limiter.Allow(ctx, "otp:"+phone.String(), h.policy.MaxRequests, h.policy.Window)
	if err != nil {
		return errs.NewDependencyErrorWithCause("rate limiter unavailable", err)
	}
	if !allowed {
		return errs.NewRateLimitedError(fmt.Sprintf("too many code requests for %s", phone))
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	if err = h.codes.Save(ctx, phone, code, h.policy.TTL); err != nil {
		return errs.NewDependencyErrorWithCause("code store unavailable", err)
	}

	if err = h.sender.SendCode(ctx, phone, code); err != nil {
		return errs.NewDependencyErrorWithCause("failed to send code", err)
	}

	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}
