package book

import "github.com/shopspring/decimal"

// SampleCatalog is loaded on an empty store when SEED_CATALOG=1.
var SampleCatalog = []Book{
	{
		Title:           "The Pragmatic Programmer",
		Author:          "David Thomas, Andrew Hunt",
		Description:     "Journey to mastery for working software developers.",
		ISBN:            "978-0135957059",
		PublishedYear:   2019,
		Genre:           "Technology",
		AvailableCopies: 12,
		Price:           decimal.RequireFromString("39.99"),
	},
	{
		Title:           "Dune",
		Author:          "Frank Herbert",
		Description:     "A desert planet, a noble family and the spice that controls the universe.",
		ISBN:            "978-0441172719",
		PublishedYear:   1965,
		Genre:           "Science Fiction",
		AvailableCopies: 8,
		Price:           decimal.RequireFromString("18.99"),
	},
	{
		Title:           "Pride and Prejudice",
		Author:          "Jane Austen",
		Description:     "Elizabeth Bennet and Mr. Darcy across the drawing rooms of Regency England.",
		ISBN:            "978-0141439518",
		PublishedYear:   1813,
		Genre:           "Classic",
		AvailableCopies: 5,
		Price:           decimal.RequireFromString("9.99"),
	},
	{
		Title:           "Sapiens",
		Author:          "Yuval Noah Harari",
		Description:     "A brief history of humankind.",
		ISBN:            "978-0062316097",
		PublishedYear:   2015,
		Genre:           "History",
		AvailableCopies: 0,
		Price:           decimal.RequireFromString("24.50"),
	},
}
