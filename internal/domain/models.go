package domain

// Models lists every persisted entity in migration order.
func Models() []any {
	return []any{
		&Location{},
		&Hotel{},
		&RoomType{},
		&OccupancyType{},
		&MealPlan{},
		&VehicleType{},
		&RatePeriod{},
		&RateKeyLock{},
		&Query{},
		&Variant{},
		&VariantDay{},
		&VariantRoomAllocation{},
		&VariantTransport{},
		&VariantPricing{},
		&VariantPricingComponent{},
		&SnapshotGeneration{},
		&VariantSnapshot{},
		&HotelSnapshot{},
		&PricingSnapshot{},
		&PricingComponentSnapshot{},
	}
}
