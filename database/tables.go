package database

var Tabels []interface{} = []interface{}{
	&User{},
	&Session{},
	&Folder{},
	&File{},
	&FilePermission{},
	&ShareLink{},
}
