package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/foresightlabs/market-api/pkg/login"
)

const serviceName = "LoginService"

const (
	logMessageMaxLen     = 50
	signatureDisplaySize = 16
)

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the sign-in Service.
// It logs method entry/exit, duration, errors, and sanitized request data.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// Challenge wraps the service method with logging
func (ls *logService) Challenge(ctx context.Context, address string) (resp *login.ChallengeResponse, err error) {
	start := time.Now()

	ls.logger.Info("Challenge started",
		zap.String("service", serviceName),
		zap.String("method", "Challenge"),
		zap.String("address", address),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Challenge failed",
				zap.String("service", serviceName),
				zap.String("method", "Challenge"),
				zap.String("address", address),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("Challenge completed",
				zap.String("service", serviceName),
				zap.String("method", "Challenge"),
				zap.String("address", address),
				zap.Time("expires_at", resp.ExpiresAt),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Challenge(ctx, address)
}

// Verify wraps the service method with logging
func (ls *logService) Verify(ctx context.Context, req *login.VerifyRequest) (resp *login.VerifyResponse, err error) {
	start := time.Now()

	ls.logger.Info("Verify started",
		zap.String("service", serviceName),
		zap.String("method", "Verify"),
		zap.String("message", truncateString(req.Message, logMessageMaxLen)),
		zap.String("signature", redactSignature(req.Signature)),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Verify failed",
				zap.String("service", serviceName),
				zap.String("method", "Verify"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("Verify completed",
				zap.String("service", serviceName),
				zap.String("method", "Verify"),
				zap.Int64("user_id", resp.User.ID),
				zap.String("address", resp.User.Address),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Verify(ctx, req)
}

// Helper functions for sensitive data redaction

// truncateString limits string length for logging to prevent log spam
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// redactSignature redacts signature data to show only metadata
// Signatures are sensitive and should not be logged in full
func redactSignature(sig string) string {
	if sig == "" {
		return "<empty>"
	}
	sigLen := len(sig)
	if sigLen > signatureDisplaySize {
		return fmt.Sprintf("%s...%s (%d bytes)", sig[:8], sig[sigLen-4:], sigLen)
	}
	return fmt.Sprintf("<%d bytes>", sigLen)
}
