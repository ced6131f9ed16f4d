// Package account resolves credentials for the remote runtime service.
//
// Credentials come from the QISKIT_IBM_* environment first, then from a
// named or default account in the domain.CredentialStore. When none exist
// the operator can create one through an interactive dialog.
package account
