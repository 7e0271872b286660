package service

import (
	"fmt"
)

// Option is a function that sets an option for the QueryGames or GetGame operation
type Option[T QueryGamesOptions | GetGameOptions] func(*T) error

// QueryGamesOptions is the options for the QueryGames operation
type QueryGamesOptions struct {
	Category    *string
	Publisher   *string
	CategoryID  *int
	PublisherID *int
}

// GetGameOptions is the options for the GetGame operation
type GetGameOptions struct {
	ID int
}

// WithCategory selects a category label for the QueryGames operation
func WithCategory(category string) Option[QueryGamesOptions] {
	return func(o *QueryGamesOptions) error {
		if category == "" {
			return fmt.Errorf("invalid category: %q", category)
		}
		o.Category = &category
		return nil
	}
}

// WithPublisher selects a publisher label for the QueryGames operation
func WithPublisher(publisher string) Option[QueryGamesOptions] {
	return func(o *QueryGamesOptions) error {
		if publisher == "" {
			return fmt.Errorf("invalid publisher: %q", publisher)
		}
		o.Publisher = &publisher
		return nil
	}
}

// WithCategoryID selects a category by its source id for the QueryGames operation
func WithCategoryID(id int) Option[QueryGamesOptions] {
	return func(o *QueryGamesOptions) error {
		o.CategoryID = &id
		return nil
	}
}

// WithPublisherID selects a publisher by its source id for the QueryGames operation
func WithPublisherID(id int) Option[QueryGamesOptions] {
	return func(o *QueryGamesOptions) error {
		o.PublisherID = &id
		return nil
	}
}

// WithGameID sets the game id for the GetGame operation
func WithGameID(id int) Option[GetGameOptions] {
	return func(o *GetGameOptions) error {
		if id <= 0 {
			return fmt.Errorf("invalid game id: %d", id)
		}
		o.ID = id
		return nil
	}
}
