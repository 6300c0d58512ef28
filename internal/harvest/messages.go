package harvest

// User-facing validation messages
const (
	MsgFullNameRequired = "El nombre es requerido."
	MsgFullNameTooShort = "El nombre debe tener más de 3 letras."
	MsgCropRequired     = "Selecciona una cosecha."
	MsgCropInvalid      = "La cosecha seleccionada no es válida."
	MsgTonsRequired     = "Las toneladas son requeridas."
	MsgTonsNotPositive  = "Las toneladas deben ser mayores a 0."
)
