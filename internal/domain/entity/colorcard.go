package entity

// ReferenceColor эталонный цвет одного поля карты.
type ReferenceColor struct {
	Name string
	RGB  Color
}

// ColorCard описание цветовой карты: поля перечислены построчно,
// начиная с левого верхнего угла.
type ColorCard struct {
	Name   string
	Rows   int
	Cols   int
	Colors []ReferenceColor
}

// Small24 CameraTrax 24 ColorCard, белое поле в левом верхнем углу.
var Small24 = ColorCard{
	Name: "CameraTrax 24 ColorCard",
	Rows: DefaultRows,
	Cols: DefaultCols,
	Colors: []ReferenceColor{
		{"White", Color{243, 238, 243}},
		{"Blue", Color{34, 63, 147}},
		{"Orange", Color{224, 124, 47}},
		{"Dark Tone", Color{116, 81, 67}},
		{"Light Grey", Color{200, 202, 202}},
		{"Green", Color{67, 149, 74}},
		{"Medium Blue", Color{68, 91, 170}},
		{"Light Tone", Color{199, 147, 129}},
		{"Grey", Color{161, 162, 161}},
		{"Red", Color{180, 49, 47}},
		{"Light Red", Color{198, 82, 97}},
		{"Sky Blue", Color{91, 122, 156}},
		{"Dark Grey", Color{120, 121, 120}},
		{"Yellow", Color{238, 198, 32}},
		{"Purple", Color{94, 58, 106}},
		{"Tree Green", Color{90, 108, 64}},
		{"Charcoal", Color{82, 83, 83}},
		{"Magenta", Color{193, 84, 151}},
		{"Yellow Green", Color{159, 189, 63}},
		{"Light Blue", Color{130, 128, 176}},
		{"Black", Color{49, 48, 51}},
		{"Cyan", Color{12, 136, 170}},
		{"Orange Yellow", Color{230, 162, 39}},
		{"Blue Green", Color{92, 190, 172}},
	},
}
