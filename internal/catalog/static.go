package catalog

import "context"

// Static serves the built-in assortment. It carries the same data the bot
// shipped with before the catalog became swappable and is the default source
// when no database is configured.
type Static struct {
	courses []Course
	items   []Item
}

// NewStatic returns a catalog with the built-in courses and bakery items.
func NewStatic() *Static {
	return &Static{
		courses: []Course{
			{
				ID:          "1",
				Name:        "Основы кондитерского искусства",
				Description: "Базовый курс для начинающих кондитеров. Вы научитесь готовить основные виды теста, кремов и начинок.",
				Duration:    "4 недели",
				Price:       5000,
			},
			{
				ID:          "2",
				Name:        "Продвинутые техники декорирования",
				Description: "Курс для тех, кто хочет освоить сложные техники украшения тортов и пирожных.",
				Duration:    "6 недель",
				Price:       7500,
			},
			{
				ID:          "3",
				Name:        "Шоколадное мастерство",
				Description: "Специализированный курс по работе с шоколадом. Вы научитесь темперировать шоколад и создавать шоколадные фигуры.",
				Duration:    "3 недели",
				Price:       6000,
			},
		},
		items: []Item{
			{ID: "1", Name: "Торт 'Наполеон'", Price: 1500},
			{ID: "2", Name: "Эклеры (набор 6 шт.)", Price: 800},
			{ID: "3", Name: "Макаронс (набор 12 шт.)", Price: 1200},
			{ID: "4", Name: "Чизкейк", Price: 900},
		},
	}
}

// Course returns the course with the given id.
func (s *Static) Course(_ context.Context, id string) (*Course, error) {
	for i := range s.courses {
		if s.courses[i].ID == id {
			course := s.courses[i]
			return &course, nil
		}
	}

	return nil, ErrNotFound
}

// Item returns the bakery item with the given id.
func (s *Static) Item(_ context.Context, id string) (*Item, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			item := s.items[i]
			return &item, nil
		}
	}

	return nil, ErrNotFound
}

// Courses returns all courses in display order.
func (s *Static) Courses(_ context.Context) ([]Course, error) {
	courses := make([]Course, len(s.courses))
	copy(courses, s.courses)
	return courses, nil
}

// Items returns all bakery items in display order.
func (s *Static) Items(_ context.Context) ([]Item, error) {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items, nil
}
