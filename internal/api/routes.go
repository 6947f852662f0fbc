package api

import "github.com/go-chi/chi/v5"

func (h *Handlers) Routes(r chi.Router) {
	r.Get("/example/health", handle(h.Health))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/units", func(r chi.Router) {
			r.Post("/", handle(h.CreateUnit))
			r.Get("/", handle(h.ListUnits))
			r.Get("/{id}", handle(h.GetUnit))
			r.Get("/{id}/collateral", handle(h.GetCollateralInfo))
			r.Post("/{id}/deposits", handle(h.DepositCards))
			r.Get("/{id}/balances/{account}", handle(h.UnitBalanceOf))
			r.Post("/{id}/transfers", handle(h.TransferUnitTokens))
		})

		r.Route("/pools", func(r chi.Router) {
			r.Post("/", handle(h.CreatePool))
			r.Get("/", handle(h.ListPools))
			r.Get("/{id}", handle(h.GetPoolInfo))
			r.Get("/{id}/details", handle(h.GetPool))
			r.Post("/{id}/members", handle(h.AddMember))
			r.Get("/{id}/collateral-value", handle(h.GetTotalCollateralValue))
			r.Get("/{id}/collateralization-ratio", handle(h.GetCollateralizationRatio))
			r.Get("/{id}/stats", handle(h.GetPoolStats))
			r.Post("/{id}/mint", handle(h.Mint))
			r.Get("/{id}/balances/{account}", handle(h.PoolBalanceOf))
			r.Post("/{id}/transfers", handle(h.TransferStablecoins))
		})

		r.Get("/events", handle(h.GetEvents))
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", handle(h.GetUsers))
		r.Post("/", handle(h.CreateUser))
		r.Get("/{wallet}", handle(h.GetUser))
	})

	r.Route("/cards", func(r chi.Router) {
		r.Get("/", handle(h.GetCards))
		r.Post("/", handle(h.CreateCard))
		r.Get("/user/{wallet}", handle(h.GetUserCards))
		r.Get("/pool", handle(h.GetPoolCards))
		r.Put("/{id}", handle(h.UpdateCard))
		r.Delete("/{id}", handle(h.DeleteCard))
	})

	r.Post("/add_card", handle(h.AddCardFromMarket))

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", handle(h.GetTransactions))
		r.Post("/", handle(h.CreateTransaction))
		r.Get("/user/{wallet}", handle(h.GetUserTransactions))
		r.Put("/{id}", handle(h.UpdateTransaction))
		r.Delete("/{id}", handle(h.DeleteTransaction))
	})
}
