package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/i2y/graphqlmcp/internal/domain"
)

// ValidateOptions identifies the schema an operation is validated against.
type ValidateOptions struct {
	API     string
	Version string
	Schemas []domain.SchemaDescriptor
}

// ValidateOperationUseCase checks GraphQL operations against a cached schema.
type ValidateOperationUseCase struct {
	checker OperationChecker
	logger  *slog.Logger
}

// NewValidateOperationUseCase creates a new ValidateOperationUseCase.
func NewValidateOperationUseCase(checker OperationChecker, logger *slog.Logger) *ValidateOperationUseCase {
	return &ValidateOperationUseCase{
		checker: checker,
		logger:  logger.With("usecase", "ValidateOperation"),
	}
}

// Execute validates a single operation. The first failing stage determines the
// outcome: empty input, unknown schema, syntax, then schema validation.
func (uc *ValidateOperationUseCase) Execute(ctx context.Context, code string, opts ValidateOptions) domain.ValidationOutcome {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ValidateOperation")
	defer span.End()
	span.SetAttributes(
		attribute.String("graphql.api", opts.API),
		attribute.String("graphql.version", opts.Version),
	)

	outcome := uc.validate(ctx, code, opts)
	span.SetAttributes(attribute.String("graphql.validation.result", string(outcome.Result)))
	if outcome.Failed() {
		uc.logger.Debug("Operation failed validation", slog.String("detail", outcome.ResultDetail))
	}
	return outcome
}

func (uc *ValidateOperationUseCase) validate(ctx context.Context, code string, opts ValidateOptions) domain.ValidationOutcome {
	operation := strings.TrimSpace(code)
	if operation == "" {
		return failed("No GraphQL operation found in the provided code.")
	}

	descriptor, err := FindSchema(opts.API, opts.Version, opts.Schemas)
	if err != nil {
		return failed("Validation error: " + err.Error())
	}

	opType, err := uc.checker.Check(ctx, descriptor, operation)
	if err != nil {
		var syntaxErr *domain.SyntaxError
		var validationErr *domain.OperationValidationError
		switch {
		case errors.As(err, &syntaxErr):
			return failed("GraphQL syntax error: " + syntaxErr.Message)
		case errors.As(err, &validationErr):
			return failed("GraphQL validation errors: " + validationErr.Error())
		default:
			uc.logger.Warn("Unexpected error while validating operation",
				slog.String("schema_id", descriptor.ID), slog.Any("error", err))
			return failed("Validation error: " + err.Error())
		}
	}

	if opType == "" {
		opType = "operation"
	}
	return domain.ValidationOutcome{
		Result:       domain.ValidationSuccess,
		ResultDetail: fmt.Sprintf("Successfully validated GraphQL %s against schema.", opType),
	}
}

// ExecuteBatch validates every code block concurrently. The returned outcomes
// are in the same order as codes.
func (uc *ValidateOperationUseCase) ExecuteBatch(ctx context.Context, codes []string, opts ValidateOptions) []domain.ValidationOutcome {
	outcomes := make([]domain.ValidationOutcome, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	for i, code := range codes {
		g.Go(func() error {
			outcomes[i] = uc.Execute(gctx, code, opts)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	uc.logger.Info("Validated operations",
		slog.Int("count", len(codes)),
		slog.Bool("any_failed", domain.AnyFailed(outcomes)))
	return outcomes
}

func failed(detail string) domain.ValidationOutcome {
	return domain.ValidationOutcome{Result: domain.ValidationFailed, ResultDetail: detail}
}
