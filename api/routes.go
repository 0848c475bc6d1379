package api

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// API version 1
	api := s.router.Group("/api")
	{
		// Authentication routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", s.handleRegisterSecure)
			auth.POST("/login", s.handleLoginSecure)
			auth.POST("/refresh", s.handleRefreshTokenSecure)

			authProtected := auth.Group("")
			authProtected.Use(s.AuthMiddleware())
			{
				authProtected.POST("/logout", s.handleLogoutSecure)
			}
		}

		// Rental market read routes (public)
		rental := api.Group("/rental")
		{
			rental.GET("/params", s.handleGetRentalParams)
			rental.GET("/registry", s.handleGetRegistry)
			rental.GET("/apps", s.handleListApps)
			rental.GET("/apps/:app_id", s.handleGetApp)
			rental.GET("/escrow/:address", s.handleGetEscrowAccount)
			rental.GET("/subscriptions/:subscriber", s.handleListSubscriptions)
			rental.GET("/subscriptions/:subscriber/:subscription_id", s.handleGetSubscription)
			rental.GET("/worker-nonce/:worker_key", s.handleGetWorkerNonce)
		}

		// Wallet routes (protected)
		wallet := api.Group("/wallet")
		wallet.Use(s.AuthMiddleware())
		{
			wallet.GET("/balance", s.handleGetBalance)
			wallet.GET("/address", s.handleGetAddress)
			wallet.POST("/send", s.handleSendTokens)
			wallet.GET("/transactions", s.handleGetTransactions)
		}

		// Market data routes (public)
		market := api.Group("/market")
		{
			market.GET("/stats", s.handleGetMarketStats)
		}
	}

	// WebSocket endpoint
	s.router.GET("/ws", s.handleWebSocket)
}
