package dto

import "hash/fnv"

// Paleta de presentación para los gráficos del dashboard. El color de una
// categoría es una búsqueda pura sobre su nombre: estable entre ejecuciones y
// completamente ajena al motor de clasificación.
var categoryPalette = [...]string{
	"#3b82f6", // azul
	"#10b981", // verde
	"#f59e0b", // ámbar
	"#ef4444", // rojo
	"#8b5cf6", // violeta
	"#06b6d4", // cian
	"#ec4899", // rosa
	"#84cc16", // lima
}

// CategoryColor devuelve el color determinista asignado a una categoría.
func CategoryColor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return categoryPalette[h.Sum32()%uint32(len(categoryPalette))]
}
