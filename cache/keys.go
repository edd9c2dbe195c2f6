package cache

import "fmt"

// Key namespaces. Collection keys fold in every filtering/sorting/paging
// parameter so distinct page requests never collide; the whole
// ProductListPrefix namespace is evicted on any product or cart mutation.
const (
	ProductListPrefix = "products_list_"
	productPrefix     = "product_"
	cartPrefix        = "cart_items_"
)

func ProductListKey(search, sort string, limit, offset int) string {
	return fmt.Sprintf("%ss%s_%s_l%d_o%d", ProductListPrefix, search, sort, limit, offset)
}

func ProductKey(id int64) string {
	return fmt.Sprintf("%s%d", productPrefix, id)
}

func CartKey(userID int64) string {
	return fmt.Sprintf("%s%d", cartPrefix, userID)
}
