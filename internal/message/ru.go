package message

import "apicompat/internal/problem"

// russian holds Russian problem descriptions keyed by code.
var russian = map[problem.Code]string{
	problem.ClassAdded:              "Класс добавлен.",
	problem.ClassRemoved:            "Класс удалён.",
	problem.ClassVisibilityIncrease: "Видимость класса расширена с %[1]s до %[2]s.",
	problem.ClassVisibilityReduced:  "Видимость класса сужена с %[1]s до %[2]s.",
	problem.ClassNowFinal:           "Класс стал final.",
	problem.ClassNoLongerFinal:      "Класс больше не final.",
	problem.ClassNowAbstract:        "Класс стал abstract.",
	problem.ClassNoLongerAbstract:   "Класс больше не abstract.",
	problem.ClassKindChanged:        "Вид типа изменился.",

	problem.MethodAdded:               "Метод добавлен.",
	problem.MethodAddedToInterface:    "Метод добавлен в интерфейс.",
	problem.MethodAddedToFinalClass:   "Метод добавлен в final-класс.",
	problem.MethodAbstractMethodAdded: "В не-final класс добавлен абстрактный метод.",
	problem.MethodRemoved:             "Метод удалён.",
	problem.MethodVisibilityIncreased: "Видимость метода расширена с %[1]s до %[2]s.",
	problem.MethodVisibilityReduced:   "Видимость метода сужена с %[1]s до %[2]s.",
	problem.MethodNowFinal:            "Метод стал final.",
	problem.MethodNoLongerFinal:       "Метод больше не final.",
	problem.MethodNowStatic:           "Метод стал static.",
	problem.MethodNoLongerStatic:      "Метод больше не static.",
	problem.MethodNowAbstract:         "Метод стал abstract.",
	problem.MethodNoLongerAbstract:    "Метод больше не abstract.",
	problem.MethodNowDefault:          "У метода интерфейса появилась реализация по умолчанию.",
	problem.MethodNoLongerDefault:     "У метода интерфейса больше нет реализации по умолчанию.",
	problem.MethodDeprecationAdded:    "Метод объявлен устаревшим.",
	problem.MethodDeprecationRemoved:  "Метод больше не устаревший.",

	problem.FieldAdded:              "Поле добавлено.",
	problem.FieldRemoved:            "Поле удалено.",
	problem.FieldVisibilityIncrease: "Видимость поля расширена с %[1]s до %[2]s.",
	problem.FieldVisibilityReduced:  "Видимость поля сужена с %[1]s до %[2]s.",
	problem.FieldNowFinal:           "Поле стало final.",
	problem.FieldNoLongerFinal:      "Поле больше не final.",
	problem.FieldNowStatic:          "Поле стало static.",
	problem.FieldNoLongerStatic:     "Поле больше не static.",
	problem.FieldDeprecationAdded:   "Поле объявлено устаревшим.",
	problem.FieldDeprecationRemoved: "Поле больше не устаревшее.",

	problem.AnnotationAdded:          "Добавлена аннотация %[1]s.",
	problem.AnnotationRemoved:        "Удалена аннотация %[1]s.",
	problem.AnnotationValueChanged:   "Значение атрибута аннотации %[1]s изменилось.",
	problem.ClassDeprecationAdded:    "Класс объявлен устаревшим.",
	problem.ClassDeprecationRemoved:  "Класс больше не устаревший.",
	problem.PackageDeprecationAdded:  "Пакет объявлен устаревшим.",
	problem.PackageDeprecationRemove: "Пакет больше не устаревший.",
}

var russianSeverity = map[problem.Severity]string{
	problem.Equivalent:          "эквивалентно",
	problem.NonBreaking:         "не ломает",
	problem.PotentiallyBreaking: "может сломать",
	problem.Breaking:            "ломает",
}

var russianAxis = map[problem.Axis]string{
	problem.AxisBinary:   "бинарная",
	problem.AxisSource:   "исходная",
	problem.AxisSemantic: "семантическая",
}
