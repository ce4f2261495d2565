package models

// MenuDocument is the persisted menu configuration.
// Menu and extra items are plain names; pricing lives on the till.
type MenuDocument struct {
	RestaurantName string   `json:"restaurantName"`
	Version        string   `json:"version"`
	LastUpdated    string   `json:"lastUpdated"`
	MenuItems      []string `json:"menuItems"`
	ExtraItems     []string `json:"extraItems"`
}
