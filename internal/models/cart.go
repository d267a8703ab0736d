package models

// Cart est la liste ordonnée des produits choisis côté client.
// La quantité d'un produit est le nombre de répétitions de son id :
// le serveur ne persiste jamais le panier, seulement l'Order qui en dérive.
type Cart struct {
	ProductIDs []string `json:"cartProducts"`
}

// Add ajoute une occurrence d'un produit (quantité +1)
func (c *Cart) Add(productID string) {
	c.ProductIDs = append(c.ProductIDs, productID)
}

// Remove retire une occurrence d'un produit (quantité -1)
func (c *Cart) Remove(productID string) {
	for i, id := range c.ProductIDs {
		if id == productID {
			c.ProductIDs = append(c.ProductIDs[:i], c.ProductIDs[i+1:]...)
			return
		}
	}
}

// Clear vide le panier
func (c *Cart) Clear() {
	c.ProductIDs = nil
}

// Quantities regroupe les répétitions par id, dans l'ordre de première apparition
func (c Cart) Quantities() ([]string, map[string]int64) {
	order := []string{}
	counts := make(map[string]int64)
	for _, id := range c.ProductIDs {
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}
	return order, counts
}
