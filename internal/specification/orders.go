package specification

// OrdersForBuyer lists a buyer's orders, newest first, with line items and
// the delivery method attached. The buyer-email criteria doubles as the
// authorization scope: another buyer's orders never match.
func OrdersForBuyer(buyerEmail string) Specification {
	return New("buyer_email = ?", buyerEmail).
		SortByDesc("order_date").
		Include("Items").
		Include("DeliveryMethod")
}

// OrderByIDForBuyer fetches one order scoped to its owner.
func OrderByIDForBuyer(id int64, buyerEmail string) Specification {
	return New("id = ? AND buyer_email = ?", id, buyerEmail).
		Include("Items").
		Include("DeliveryMethod")
}

// OrderByPaymentIntent resolves the order a provider webhook refers to.
func OrderByPaymentIntent(paymentIntentID string) Specification {
	return New("payment_intent_id = ?", paymentIntentID).
		Include("Items").
		Include("DeliveryMethod")
}

// DeliveryMethodsByPrice lists the reference delivery methods, cheapest first.
func DeliveryMethodsByPrice() Specification {
	return New("").SortBy("price")
}
