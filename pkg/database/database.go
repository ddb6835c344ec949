package database

import (
	"fmt"
	"log"

	"tutorbot_backend/internal/config"
	"tutorbot_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedTopics(db)
	seedExercises(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Student{},
		&model.Topic{},
		&model.Exercise{},
		&model.Hint{},
		&model.Assignment{},
		&model.HintDelivery{},
		&model.Attempt{},
		&model.CorpusDocument{},
		&model.CorpusChunk{},
		&model.QAHistory{},
	)
}

// seedTopics inserts the course topics on an empty database.
func seedTopics(db *gorm.DB) {
	var count int64
	db.Model(&model.Topic{}).Count(&count)
	if count > 0 {
		return
	}

	defaultTopics := []model.Topic{
		{Name: "Variables", Description: "Declaración de variables, tipos de datos y conversiones en C#."},
		{Name: "Condicionales", Description: "Estructuras de control if/else y switch en C#."},
		{Name: "Ciclos", Description: "Ciclos for, while y do-while en C#."},
		{Name: "Arreglos", Description: "Arreglos unidimensionales y bidimensionales en C#."},
		{Name: "Métodos", Description: "Definición y uso de métodos, parámetros y valores de retorno."},
		{Name: "Cadenas", Description: "Manipulación de cadenas de texto en C#."},
	}
	for _, t := range defaultTopics {
		db.Create(&t)
	}
}

// seedExercises loads a starter exercise set on an empty database. The bulk
// of the course content arrives through the admin API; this keeps a fresh
// install usable for a first /exercise request.
func seedExercises(db *gorm.DB) {
	var count int64
	db.Model(&model.Exercise{}).Count(&count)
	if count > 0 {
		return
	}

	var topic model.Topic
	if err := db.Where("name = ?", "Ciclos").First(&topic).Error; err != nil {
		return
	}

	exercises := []struct {
		exercise model.Exercise
		hints    []string
	}{
		{
			exercise: model.Exercise{
				TopicID:     topic.ID,
				Title:       "Suma de los primeros N números",
				Description: "Escribe un programa que lea un entero N y calcule la suma de los números del 1 al N usando un ciclo \\texttt{for}.",
				Difficulty:  model.Basic,
				Solution:    "```\nint n = int.Parse(Console.ReadLine());\nint suma = 0;\nfor (int i = 1; i <= n; i++)\n{\n    suma += i;\n}\nConsole.WriteLine(suma);\n```",
			},
			hints: []string{
				"Necesitas una variable acumuladora inicializada en cero.",
				"El ciclo debe recorrer desde 1 hasta N inclusive.",
			},
		},
		{
			exercise: model.Exercise{
				TopicID:     topic.ID,
				Title:       "Tabla de multiplicar",
				Description: "Escribe un programa que lea un entero y muestre su tabla de multiplicar del 1 al 10, una línea por producto.",
				Difficulty:  model.Basic,
				Solution:    "```\nint n = int.Parse(Console.ReadLine());\nfor (int i = 1; i <= 10; i++)\n{\n    Console.WriteLine($\"{n} x {i} = {n * i}\");\n}\n```",
			},
			hints: []string{
				"Un ciclo de 1 a 10 basta; multiplica el contador por el número leído.",
			},
		},
		{
			exercise: model.Exercise{
				TopicID:     topic.ID,
				Title:       "Dígitos de un número",
				Description: "Escribe un programa que lea un entero positivo y cuente cuántos dígitos tiene usando un ciclo \\texttt{while}.",
				Difficulty:  model.Intermediate,
				Solution:    "```\nint n = int.Parse(Console.ReadLine());\nint digitos = 0;\nwhile (n > 0)\n{\n    n /= 10;\n    digitos++;\n}\nConsole.WriteLine(digitos);\n```",
			},
			hints: []string{
				"Dividir un entero entre 10 descarta su último dígito.",
				"El ciclo termina cuando el número llega a cero.",
			},
		},
	}

	for i := range exercises {
		if err := db.Create(&exercises[i].exercise).Error; err != nil {
			continue
		}
		for order, text := range exercises[i].hints {
			db.Create(&model.Hint{
				ExerciseID: exercises[i].exercise.ID,
				Order:      order + 1,
				HintText:   text,
			})
		}
	}
}
