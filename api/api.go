// Package api serves expression evaluation over HTTP.
package api

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/srijanmukherjee/meval"
	"github.com/srijanmukherjee/meval/config"
)

// Server is the evaluation HTTP server.
type Server struct {
	app *fiber.App
	cfg config.Config
}

// New creates a server. Routes are registered but nothing listens until
// Listen is called.
func New(cfg config.Config) *Server {
	srv := &Server{cfg: cfg}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
	})

	app.Get("/healthz", srv.health)
	app.Get("/v1/operators", srv.listOperators)
	app.Get("/v1/evaluate", srv.evaluateQuery)
	app.Post("/v1/evaluate", srv.evaluateBody)

	srv.app = app
	return srv
}

// Listen starts the HTTP server on the configured address.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Addr())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying Fiber app (useful for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type evaluateRequest struct {
	Expression string `json:"expression"`
	Strict     *bool  `json:"strict"`
}

func (s *Server) evaluateBody(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidArgument(c, fmt.Sprintf("invalid request body: %v", err), 0)
	}
	return s.evaluate(c, req)
}

func (s *Server) evaluateQuery(c *fiber.Ctx) error {
	req := evaluateRequest{Expression: c.Query("expression")}
	if v := c.Query("strict"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return invalidArgument(c, fmt.Sprintf("invalid strict value %q", v), 0)
		}
		req.Strict = &strict
	}
	return s.evaluate(c, req)
}

func (s *Server) evaluate(c *fiber.Ctx, req evaluateRequest) error {
	if req.Expression == "" {
		return invalidArgument(c, "expression is required", 0)
	}
	if len(req.Expression) > s.cfg.MaxExpressionLength {
		return invalidArgument(c, fmt.Sprintf("expression is longer than %d bytes", s.cfg.MaxExpressionLength), 0)
	}

	strict := s.cfg.Strict
	if req.Strict != nil {
		strict = *req.Strict
	}

	res, err := meval.Evaluate(req.Expression, meval.Strict(strict))
	if err != nil {
		var inputErr meval.InputError
		if errors.As(err, &inputErr) {
			return invalidArgument(c, err.Error(), inputErr.Pos())
		}
		log.Printf("Error evaluating %q: %v", req.Expression, err)
		return c.Status(500).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    500,
				"message": err.Error(),
				"status":  "INTERNAL",
			},
		})
	}

	return c.JSON(fiber.Map{
		"expression": req.Expression,
		"result":     res,
	})
}

func (s *Server) listOperators(c *fiber.Ctx) error {
	ops := meval.Operators()
	items := make([]fiber.Map, len(ops))
	for i, op := range ops {
		items[i] = fiber.Map{
			"symbol":        op.Symbol,
			"arity":         op.Arity,
			"precedence":    op.Precedence,
			"associativity": op.Assoc.String(),
			"kind":          op.Kind.String(),
		}
	}
	return c.JSON(fiber.Map{
		"operators": items,
		"constants": meval.Constants(),
	})
}

func invalidArgument(c *fiber.Ctx, message string, pos int) error {
	body := fiber.Map{
		"code":    400,
		"message": message,
		"status":  "INVALID_ARGUMENT",
	}
	if pos > 0 {
		body["position"] = pos
	}
	return c.Status(400).JSON(fiber.Map{"error": body})
}
