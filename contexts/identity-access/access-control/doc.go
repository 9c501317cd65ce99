// Package accesscontrol implements the authorization root inside the
// identity-access context.
//
// The module owns the contract owner slot, the admin set, and the per-principal
// role map, and exposes the boolean authorization queries every other module
// consults before mutating its own state. It keeps business rules in
// application/domain layers and isolates infrastructure concerns behind ports
// and adapters.
package accesscontrol
