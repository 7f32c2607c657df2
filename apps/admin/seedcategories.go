package main

import (
	"context"

	"github.com/Dagua-alejandro/unesum-redes-academico/core/category"
)

// defaultCategories are the course categories shown on the public catalog.
var defaultCategories = []category.Category{
	{Name: "Redes", Description: "Fundamentos y diseño de redes de computadoras", Icon: category.IconNetwork, Color: "from-blue-500 to-cyan-500"},
	{Name: "Internet", Description: "Protocolos y servicios de Internet", Icon: category.IconGlobe, Color: "from-green-500 to-emerald-500"},
	{Name: "Bases de Datos", Description: "Diseño y administración de bases de datos", Icon: category.IconDatabase, Color: "from-purple-500 to-pink-500"},
	{Name: "Seguridad", Description: "Seguridad informática y de redes", Icon: category.IconShield, Color: "from-red-500 to-orange-500"},
	{Name: "Comunicaciones", Description: "Comunicaciones inalámbricas y móviles", Icon: category.IconWifi, Color: "from-indigo-500 to-blue-500"},
	{Name: "Formación General", Description: "Cursos introductorios y de formación general", Icon: category.IconBook, Color: "from-amber-500 to-yellow-500"},
}

func (cli *commandLine) seedCategories() error {
	ctx := context.Background()
	for _, cat := range defaultCategories {
		if _, err := cli.catRepo.CreateCategory(ctx, cat); err != nil {
			if err == category.ErrNameExists {
				continue
			}
			return err
		}
	}
	return nil
}
