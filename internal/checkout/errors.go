package checkout

import "fmt"

// ValidationError : requête de checkout invalide (panier vide ou sans produit connu)
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AuthenticationError : signature du webhook invalide — aucun état n'est modifié
type AuthenticationError struct {
	Cause error
}

func (e *AuthenticationError) Error() string { return "signature mismatch" }
func (e *AuthenticationError) Unwrap() error { return e.Cause }

// OrchestrationError : échec d'un appel aval (catalogue, commande, session Stripe).
// Le détail reste côté logs, jamais exposé tel quel au client.
type OrchestrationError struct {
	Step  string
	Cause error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("échec checkout (%s): %v", e.Step, e.Cause)
}

func (e *OrchestrationError) Unwrap() error { return e.Cause }
