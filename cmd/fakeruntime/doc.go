// Command fakeruntime serves an in-memory imitation of the Qiskit Runtime
// REST API for demos and manual testing without an IBM account.
//
// Usage:
//
//	fakeruntime --addr :8089
//	quantumtie --runtime-url http://localhost:8089 --ping-url http://localhost:8089/ -b least
//
// HTTP API
//
//	POST /identity/token                    exchange an API key for a bearer token
//	GET  /backends                          list device names
//	GET  /backends/{name}/status            queue length and state
//	GET  /backends/{name}/configuration     qubit count, simulator flag
//	GET  /backends/{name}/properties        calibration data
//	POST /jobs                              submit a sampler job
//	GET  /jobs/{id}                         job state
//	GET  /jobs/{id}/results                 sampler results
//	POST /jobs/{id}/cancel                  cancel a job
//
// All state is held in memory and lost on exit. Jobs move from Queued to
// Running to Done on successive status polls and return a fixed result
// weighted toward 10101. Any bearer token is accepted unless --token is set.
//
// Circuits are still transpiled by the local Qiskit runner before submission,
// so the demo needs Python with qiskit and qiskit-ibm-runtime installed.
package main
