// Package model defines the provider-agnostic abstraction for the language
// model capability simulation agents may invoke from their action handlers.
//
// Core goals:
//   - Keep the simulation engine fully decoupled from vendor SDKs
//   - Normalize request/response shapes to the minimum agents need
//     (instructions + prompt in, text + usage out)
//   - Facilitate deterministic testing and offline examples (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package; agents receive a Model value and stay vendor independent. Calls
// are synchronous: agent handlers already run concurrently per action, so a
// blocking call does not delay sibling agents.
package model
