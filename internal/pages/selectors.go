package pages

// Selectors for the cart and checkout screens. They match the markup rendered
// by the storefront templates and by the public Swag Labs demo.
const (
	checkoutButton   = "#checkout"
	firstNameInput   = `[data-test="firstName"]`
	lastNameInput    = `[data-test="lastName"]`
	postalCodeInput  = `[data-test="postalCode"]`
	continueButton   = `[data-test="continue"]`
	finishButton     = `[data-test="finish"]`
	completeTitle    = "[class='title']"
	thankYouHeader   = "[class='complete-header']"
	backHomeButton   = "#back-to-products"
	productTitle     = "div.inventory_item_name"
	errorMessage     = `[data-test="error"]`
	removeButton     = `[data-test*="remove"]`
	cartBadge        = "span.shopping_cart_badge"
	productsHeading  = "span.title"
	cancelButton     = "#cancel"
	continueShopping = "Continue Shopping"

	cartLink         = "a.shopping_cart_link"
	addToCartPattern = `[data-test="add-to-cart-%s"]`
	inventoryPath    = "/inventory.html"
	cartPath         = "/cart.html"
)
