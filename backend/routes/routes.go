package routes

import (
	"gpt7702/backend/handlers"
	"gpt7702/backend/middleware"
	"net/http"
)

// SetupRoutes configures all application routes: the original term-life
// premium endpoints plus the §7702 GPT contract endpoints added
// alongside them. No §7702A MEC endpoints are registered.
func SetupRoutes(handler *handlers.ActuarialHandler, gptHandler *handlers.GPTHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// API routes with middleware
	mux.HandleFunc("/api/calculate",
		middleware.Chain(handler.CalculatePremium, middleware.Logger, middleware.CORS))

	mux.HandleFunc("/api/calculate/batch",
		middleware.Chain(handler.CalculateBatch, middleware.Logger, middleware.CORS))

	mux.HandleFunc("/api/calculate/sensitivity",
		middleware.Chain(handler.SensitivityAnalysis, middleware.Logger, middleware.CORS))

	mux.HandleFunc("/api/analyze/portfolio",
		middleware.Chain(handler.PortfolioAnalysis, middleware.Logger, middleware.CORS))

	mux.HandleFunc("/api/tables",
		middleware.Chain(handler.GetTables, middleware.Logger, middleware.CORS))

	mux.HandleFunc("/api/health",
		middleware.Chain(handler.HealthCheck, middleware.Logger, middleware.CORS))

	// §7702 GPT contract routes
	mux.HandleFunc("/api/gpt/contracts",
		middleware.Chain(gptHandler.IssueContract, middleware.Logger, middleware.CORS))

	mux.HandleFunc("/api/gpt/contracts/state",
		middleware.Chain(gptHandler.GetContractState, middleware.Logger, middleware.CORS))

	mux.HandleFunc("/api/gpt/contracts/payment",
		middleware.Chain(gptHandler.AcceptPayment, middleware.Logger, middleware.CORS))

	mux.HandleFunc("/api/gpt/contracts/anniversary",
		middleware.Chain(gptHandler.ProcessAnniversary, middleware.Logger, middleware.CORS))

	mux.HandleFunc("/api/gpt/contracts/specamt",
		middleware.Chain(gptHandler.InvertSpecAmt, middleware.Logger, middleware.CORS))

	// Static file server for frontend
	fs := http.FileServer(http.Dir("frontend/"))
	mux.Handle("/", fs)

	return mux
}
