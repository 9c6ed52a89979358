package policy

type VarUpdate struct {
	VarName string `json:"var_name" binding:"required"`
	Value   int    `json:"value"`
}

type UpsertVarsRequest struct {
	Vars []VarUpdate `json:"vars" binding:"required,min=1,dive"`
}

type VarResponse struct {
	VarName string `json:"var_name"`
	Value   int    `json:"value"`
}
