// Package views renders the storefront pages and fragments.
package views

import storefront "github.com/mejacafe/storefront"

// Funcs returns the view set the storefront App renders with.
func Funcs() storefront.ViewFuncs {
	return storefront.ViewFuncs{
		Home:             Home,
		Menu:             Menu,
		Product:          Product,
		Cart:             Cart,
		CartItemDetails:  CartItemDetails,
		Carousel:         Carousel,
		AdminLogin:       AdminLogin,
		AdminDashboard:   AdminDashboard,
		AdminFormPartial: AdminFormPartial,
		AdminImages:      AdminImages,
		NotFound:         NotFound,
		ServerError:      ServerError,
	}
}
