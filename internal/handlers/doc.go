// Package handlers implements the HTTP API layer of the p4wq service.
//
// Handlers delegate to services.PoolService and focus on request binding,
// response formatting and error mapping.
//
// # API Endpoints
//
// Routes are mounted under /api/v1 by RegisterRoutes:
//
//	┌────────┬─────────────────────┬─────────────────────────────────────────┐
//	│ Method │ Endpoint            │ Description                             │
//	├────────┼─────────────────────┼─────────────────────────────────────────┤
//	│ GET    │ /pools              │ Stats of every pool                     │
//	│ GET    │ /pools/{name}       │ Stats of one pool                       │
//	│ POST   │ /pools/{name}/work  │ Submit a synthetic item (202)           │
//	│ POST   │ /pools/{name}/start │ Start a delayed pool's workers (204)    │
//	└────────┴─────────────────────┴─────────────────────────────────────────┘
//
// Work request body:
//
//	{
//	    "name": "mix",
//	    "priority": 5,
//	    "deadline_ms": 2,     // relative deadline, >= 0
//	    "duration_ms": 10     // handler run time, 0..60000
//	}
//
// # Error Mapping
//
//	┌───────────────────────────────┬────────┐
//	│ Error                         │ Status │
//	├───────────────────────────────┼────────┤
//	│ body binding failure          │ 400    │
//	│ InvalidConfigurationError     │ 400    │
//	│ ResourceNotFoundError         │ 404    │
//	│ anything else                 │ 500    │
//	└───────────────────────────────┴────────┘
//
// Error responses have the form {"error": "message"}.
package handlers
