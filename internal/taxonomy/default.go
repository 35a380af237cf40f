package taxonomy

import "github.com/claude/gymlog/internal/models"

func parent(id int64) *int64 { return &id }

var defaultGroups = []models.MuscleGroup{
	{ID: 1, Name: "Грудь"},
	{ID: 2, Name: "Спина"},
	{ID: 3, Name: "Широчайшие", ParentID: parent(2)},
	{ID: 4, Name: "Трапеция", ParentID: parent(2)},
	{ID: 5, Name: "Плечи"},
	{ID: 6, Name: "Передняя дельта", ParentID: parent(5)},
	{ID: 7, Name: "Средняя дельта", ParentID: parent(5)},
	{ID: 8, Name: "Задняя дельта", ParentID: parent(5)},
	{ID: 9, Name: "Ноги"},
	{ID: 10, Name: "Квадрицепс", ParentID: parent(9)},
	{ID: 11, Name: "Бицепс бедра", ParentID: parent(9)},
	{ID: 12, Name: "Икры", ParentID: parent(9)},
	{ID: 13, Name: "Руки"},
	{ID: 14, Name: "Бицепс", ParentID: parent(13)},
	{ID: 15, Name: "Трицепс", ParentID: parent(13)},
	{ID: 16, Name: "Предплечья", ParentID: parent(13)},
}

// defaultExercises maps the lower-cased names used in the logs to muscle groups.
var defaultExercises = map[string]string{
	// Грудь
	"жим":                    "Грудь",
	"жис":                    "Грудь",
	"жим в наклоне":          "Грудь",
	"жим гантелей в наклоне": "Грудь",
	"брусья":                 "Грудь",
	"жим 1 рукой":            "Грудь",

	// Широчайшие
	"подтягивания":           "Широчайшие",
	"сидя на спину":          "Широчайшие",
	"спина сидя":             "Широчайшие",
	"тяга вертикальная":      "Широчайшие",
	"сидя вертикально спина": "Широчайшие",
	"тяга с колена":          "Широчайшие",
	"тяга одной":             "Широчайшие",
	"спина":                  "Широчайшие",

	// Плечи
	"плечи":      "Средняя дельта",
	"плечи стоя": "Средняя дельта",
	"махи":       "Средняя дельта",
	"рассомаха":  "Задняя дельта",

	// Ноги
	"ноги":         "Квадрицепс",
	"сидя на ноги": "Квадрицепс",
	"ноги сидя":    "Квадрицепс",
	"лежа на ноги": "Бицепс бедра",
	"ноги лежа":    "Бицепс бедра",
	"на ноги":      "Квадрицепс",
	"лежа":         "Бицепс бедра",

	// Бицепс
	"битка":             "Бицепс",
	"бицуха":            "Бицепс",
	"битка сидя и стоя": "Бицепс",
	"битка стоя и сидя": "Бицепс",
	"стоя на битку":     "Бицепс",
	"битка лежа":        "Бицепс",
	"одной рукой":       "Бицепс",

	// Трицепс
	"трицепс на руку":  "Трицепс",
	"трицепст на руку": "Трицепс",
	"рука стоя триц":   "Трицепс",
	"рука и трицепс":   "Трицепс",
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	t, err := New(defaultGroups, defaultExercises)
	if err != nil {
		panic("taxonomy: invalid built-in table: " + err.Error())
	}
	return t
}
