package apperror

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Status maps an error kind to the HTTP status the API reports.
// Conflicts are reported as 400, matching what clients of the API expect for
// duplicate ISBNs and e-mail addresses.
func Status(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindPrecondition:
		return fiber.StatusConflict
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err as a JSON body. Unclassified errors are logged and
// reported without their details.
func Respond(c *fiber.Ctx, err error) error {
	kind := KindOf(err)
	if kind == KindInternal || kind == KindUnavailable {
		zap.L().Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := fiber.Map{"message": MessageOf(err)}
	if fields := FieldsOf(err); len(fields) > 0 {
		body["errors"] = fields
	}
	return c.Status(Status(kind)).JSON(body)
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}
