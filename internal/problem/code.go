package problem

import "slices"

// Code identifies the concern a problem reports, e.g. CLASS_VISIBILITY_INCREASED.
type Code string

// Class-level codes.
const (
	ClassAdded              Code = "CLASS_ADDED"
	ClassRemoved            Code = "CLASS_REMOVED"
	ClassVisibilityIncrease Code = "CLASS_VISIBILITY_INCREASED"
	ClassVisibilityReduced  Code = "CLASS_VISIBILITY_REDUCED"
	ClassNowFinal           Code = "CLASS_NOW_FINAL"
	ClassNoLongerFinal      Code = "CLASS_NO_LONGER_FINAL"
	ClassNowAbstract        Code = "CLASS_NOW_ABSTRACT"
	ClassNoLongerAbstract   Code = "CLASS_NO_LONGER_ABSTRACT"
	ClassKindChanged        Code = "CLASS_KIND_CHANGED"
)

// Method-level codes.
const (
	MethodAdded                 Code = "METHOD_ADDED"
	MethodAddedToInterface      Code = "METHOD_ADDED_TO_INTERFACE"
	MethodAddedToFinalClass     Code = "METHOD_ADDED_TO_FINAL_CLASS"
	MethodAbstractMethodAdded   Code = "METHOD_ABSTRACT_METHOD_ADDED"
	MethodRemoved               Code = "METHOD_REMOVED"
	MethodVisibilityIncreased   Code = "METHOD_VISIBILITY_INCREASED"
	MethodVisibilityReduced     Code = "METHOD_VISIBILITY_REDUCED"
	MethodNowFinal              Code = "METHOD_NOW_FINAL"
	MethodNoLongerFinal         Code = "METHOD_NO_LONGER_FINAL"
	MethodNowStatic             Code = "METHOD_NOW_STATIC"
	MethodNoLongerStatic        Code = "METHOD_NO_LONGER_STATIC"
	MethodNowAbstract           Code = "METHOD_NOW_ABSTRACT"
	MethodNoLongerAbstract      Code = "METHOD_NO_LONGER_ABSTRACT"
	MethodNowDefault            Code = "METHOD_NOW_DEFAULT"
	MethodNoLongerDefault       Code = "METHOD_NO_LONGER_DEFAULT"
	MethodDeprecationAdded      Code = "METHOD_DEPRECATION_ADDED"
	MethodDeprecationRemoved    Code = "METHOD_DEPRECATION_REMOVED"
)

// Field-level codes.
const (
	FieldAdded              Code = "FIELD_ADDED"
	FieldRemoved            Code = "FIELD_REMOVED"
	FieldVisibilityIncrease Code = "FIELD_VISIBILITY_INCREASED"
	FieldVisibilityReduced  Code = "FIELD_VISIBILITY_REDUCED"
	FieldNowFinal           Code = "FIELD_NOW_FINAL"
	FieldNoLongerFinal      Code = "FIELD_NO_LONGER_FINAL"
	FieldNowStatic          Code = "FIELD_NOW_STATIC"
	FieldNoLongerStatic     Code = "FIELD_NO_LONGER_STATIC"
	FieldDeprecationAdded   Code = "FIELD_DEPRECATION_ADDED"
	FieldDeprecationRemoved Code = "FIELD_DEPRECATION_REMOVED"
)

// Annotation and deprecation codes.
const (
	AnnotationAdded          Code = "ANNOTATION_ADDED"
	AnnotationRemoved        Code = "ANNOTATION_REMOVED"
	AnnotationValueChanged   Code = "ANNOTATION_ATTRIBUTE_VALUE_CHANGED"
	ClassDeprecationAdded    Code = "CLASS_DEPRECATION_ADDED"
	ClassDeprecationRemoved  Code = "CLASS_DEPRECATION_REMOVED"
	PackageDeprecationAdded  Code = "PACKAGE_DEPRECATION_ADDED"
	PackageDeprecationRemove Code = "PACKAGE_DEPRECATION_REMOVED"
)

// Info is the static metadata of a code.
type Info struct {
	Code           Code
	Name           string // dotted short name, e.g. "class.visibilityIncreased"
	Description    string // english fallback text
	Classification Classification
}

var (
	nb  = NonBreaking
	pb  = PotentiallyBreaking
	br  = Breaking
	eqv = Equivalent
)

func semantic(binary, source, sem Severity) Classification {
	return Classify(binary, source).With(AxisSemantic, sem)
}

var catalog = map[Code]Info{
	ClassAdded:              {ClassAdded, "class.added", "Class was added.", Classify(nb, nb)},
	ClassRemoved:            {ClassRemoved, "class.removed", "Class was removed.", Classify(br, br)},
	ClassVisibilityIncrease: {ClassVisibilityIncrease, "class.visibilityIncreased", "Visibility of the class increased.", Classify(nb, nb)},
	ClassVisibilityReduced:  {ClassVisibilityReduced, "class.visibilityReduced", "Visibility of the class reduced.", Classify(br, br)},
	ClassNowFinal:           {ClassNowFinal, "class.nowFinal", "Class is now final.", Classify(br, br)},
	ClassNoLongerFinal:      {ClassNoLongerFinal, "class.noLongerFinal", "Class is no longer final.", Classify(nb, nb)},
	ClassNowAbstract:        {ClassNowAbstract, "class.nowAbstract", "Class is now abstract.", Classify(br, br)},
	ClassNoLongerAbstract:   {ClassNoLongerAbstract, "class.noLongerAbstract", "Class is no longer abstract.", Classify(nb, nb)},
	ClassKindChanged:        {ClassKindChanged, "class.kindChanged", "Kind of the type changed.", Classify(br, br)},

	MethodAdded:               {MethodAdded, "method.added", "Method was added.", Classify(nb, nb)},
	MethodAddedToInterface:    {MethodAddedToInterface, "method.addedToInterface", "Method was added to an interface.", semantic(nb, nb, pb)},
	MethodAddedToFinalClass:   {MethodAddedToFinalClass, "method.addedToFinalClass", "Method was added to a final class.", Classify(nb, nb)},
	MethodAbstractMethodAdded: {MethodAbstractMethodAdded, "method.abstractMethodAdded", "Abstract method was added to a non-final class.", Classify(br, br)},
	MethodRemoved:             {MethodRemoved, "method.removed", "Method was removed.", Classify(br, br)},
	MethodVisibilityIncreased: {MethodVisibilityIncreased, "method.visibilityIncreased", "Visibility of the method increased.", Classify(nb, nb)},
	MethodVisibilityReduced:   {MethodVisibilityReduced, "method.visibilityReduced", "Visibility of the method reduced.", Classify(br, br)},
	MethodNowFinal:            {MethodNowFinal, "method.nowFinal", "Method is now final.", Classify(br, br)},
	MethodNoLongerFinal:       {MethodNoLongerFinal, "method.noLongerFinal", "Method is no longer final.", Classify(nb, nb)},
	MethodNowStatic:           {MethodNowStatic, "method.nowStatic", "Method is now static.", Classify(br, br)},
	MethodNoLongerStatic:      {MethodNoLongerStatic, "method.noLongerStatic", "Method is no longer static.", Classify(br, br)},
	MethodNowAbstract:         {MethodNowAbstract, "method.nowAbstract", "Method is now abstract.", Classify(br, br)},
	MethodNoLongerAbstract:    {MethodNoLongerAbstract, "method.noLongerAbstract", "Method is no longer abstract.", Classify(nb, nb)},
	MethodNowDefault:          {MethodNowDefault, "method.nowDefault", "Interface method now has a default implementation.", Classify(nb, nb)},
	MethodNoLongerDefault:     {MethodNoLongerDefault, "method.noLongerDefault", "Interface method no longer has a default implementation.", Classify(br, br)},
	MethodDeprecationAdded:    {MethodDeprecationAdded, "method.deprecated", "Method was deprecated.", semantic(eqv, eqv, pb)},
	MethodDeprecationRemoved:  {MethodDeprecationRemoved, "method.undeprecated", "Method is no longer deprecated.", semantic(eqv, eqv, nb)},

	FieldAdded:              {FieldAdded, "field.added", "Field was added.", Classify(nb, nb)},
	FieldRemoved:            {FieldRemoved, "field.removed", "Field was removed.", Classify(br, br)},
	FieldVisibilityIncrease: {FieldVisibilityIncrease, "field.visibilityIncreased", "Visibility of the field increased.", Classify(nb, nb)},
	FieldVisibilityReduced:  {FieldVisibilityReduced, "field.visibilityReduced", "Visibility of the field reduced.", Classify(br, br)},
	FieldNowFinal:           {FieldNowFinal, "field.nowFinal", "Field is now final.", Classify(br, br)},
	FieldNoLongerFinal:      {FieldNoLongerFinal, "field.noLongerFinal", "Field is no longer final.", semantic(nb, nb, pb)},
	FieldNowStatic:          {FieldNowStatic, "field.nowStatic", "Field is now static.", Classify(br, br)},
	FieldNoLongerStatic:     {FieldNoLongerStatic, "field.noLongerStatic", "Field is no longer static.", Classify(br, br)},
	FieldDeprecationAdded:   {FieldDeprecationAdded, "field.deprecated", "Field was deprecated.", semantic(eqv, eqv, pb)},
	FieldDeprecationRemoved: {FieldDeprecationRemoved, "field.undeprecated", "Field is no longer deprecated.", semantic(eqv, eqv, nb)},

	AnnotationAdded:          {AnnotationAdded, "annotation.added", "Annotation was added.", semantic(eqv, eqv, pb)},
	AnnotationRemoved:        {AnnotationRemoved, "annotation.removed", "Annotation was removed.", semantic(eqv, eqv, pb)},
	AnnotationValueChanged:   {AnnotationValueChanged, "annotation.attributeValueChanged", "Annotation attribute value changed.", semantic(eqv, eqv, pb)},
	ClassDeprecationAdded:    {ClassDeprecationAdded, "class.deprecated", "Class was deprecated.", semantic(eqv, eqv, pb)},
	ClassDeprecationRemoved:  {ClassDeprecationRemoved, "class.undeprecated", "Class is no longer deprecated.", semantic(eqv, eqv, nb)},
	PackageDeprecationAdded:  {PackageDeprecationAdded, "package.deprecated", "Package was deprecated.", semantic(eqv, eqv, pb)},
	PackageDeprecationRemove: {PackageDeprecationRemove, "package.undeprecated", "Package is no longer deprecated.", semantic(eqv, eqv, nb)},
}

// Lookup returns the catalog entry of a code.
func Lookup(code Code) (Info, bool) {
	info, ok := catalog[code]
	return info, ok
}

// DefaultClassification is the catalog classification; unknown codes are
// potentially breaking everywhere.
func DefaultClassification(code Code) Classification {
	if info, ok := catalog[code]; ok {
		return info.Classification
	}
	return Uniform(PotentiallyBreaking)
}

// Catalog returns every known code sorted by code.
func Catalog() []Info {
	out := make([]Info, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, info)
	}
	slices.SortFunc(out, func(a, b Info) int {
		switch {
		case a.Code < b.Code:
			return -1
		case a.Code > b.Code:
			return 1
		}
		return 0
	})
	return out
}

// Codes returns every known code sorted.
func Codes() []Code {
	infos := Catalog()
	out := make([]Code, len(infos))
	for i, info := range infos {
		out[i] = info.Code
	}
	return out
}
