package util

// User-facing messages, kept in one place so they stay swappable for
// localization. Vars, not consts, on purpose.
var (
	MsgTokenMissing = "Token autentikasi tidak ditemukan"
	MsgTokenInvalid = "Token autentikasi tidak valid"
	MsgTokenExpired = "Token autentikasi sudah expired"
	MsgUserNotFound = "User tidak ditemukan"
	MsgServerError  = "Terjadi kesalahan pada server"
	MsgBadRequest   = "Permintaan tidak valid"
	MsgPageNotFound = "Halaman tidak ditemukan"

	MsgEmailTaken      = "Pengguna dengan email ini sudah terdaftar"
	MsgWrongCredential = "Email atau kata sandi salah"
	MsgRegistered      = "Akun berhasil dibuat! Silakan login."
	MsgLoggedIn        = "Login berhasil"
	MsgLoggedOut       = "Berhasil keluar"
	MsgWrongPassword   = "Kata sandi lama salah"
	MsgPasswordChanged = "Kata sandi berhasil diubah"
	MsgProfileUpdated  = "Profil berhasil diperbarui"
	MsgAccountDeleted  = "Akun berhasil dihapus"

	MsgProductCreated  = "Produk berhasil ditambahkan!"
	MsgProductUpdated  = "Produk berhasil diperbarui!"
	MsgProductDeleted  = "Produk berhasil dihapus!"
	MsgProductNotFound = "Produk tidak ditemukan"
	MsgImageRejected   = "Gambar produk tidak dapat disimpan"
)
