// Package server provides the HTTP server of the p4wq service.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  ginzap.Ginzap (request logging, "http" logger)         │  │
//	│  │  ginzap.RecoveryWithZap (panic recovery, stack traces)  │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  GET /health       liveness                                   │
//	│  GET /metrics      Prometheus (WithMetrics)                   │
//	│  /api/v1/...       handlers (registered via callback)         │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
//   - dev: gin debug mode
//   - prod: gin release mode
//
// # Server Lifecycle
//
//	srv, err := server.NewServer(cfg, handler.RegisterRoutes, server.WithMetrics(m.Registry()))
//
//	go func() {
//	    if err := srv.Start(ctx); err != nil {
//	        zap.S().Errorw("server error", "error", err)
//	    }
//	}()
//
//	<-ctx.Done()
//	srv.Stop(shutdownCtx)
//
// Stop performs a graceful shutdown, waiting for in-flight requests.
package server
