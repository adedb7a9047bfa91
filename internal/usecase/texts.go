package usecase

// Тексты бота. Язык — узбекский, как в продакшене; локализации нет.
const (
	textGreeting        = "Assalomu alaykum, %s! Niholbooks botiga xush kelibsiz.\nQuyidagi menudan kerakli bo'limni tanlang:"
	textSharePrompt     = "Bizni do'stlaringizga tavsiya qiling: 👇"
	textShareInline     = "\nSalom! Men Niholbooks orqali kitob olyapman. Tavsiya qilaman!"
	textAdminUnset      = "⚠️ Admin ID sozlanmagan.\nSizning ID raqamingiz: `%d`\nBuni .env faylga yozing."
	textChooseCategory  = "Bo'limni tanlang:"
	textCategoryHeader  = "📂 %s\nKitobni tanlang:"
	textSearchPrompt    = "Kitob nomini yozing (masalan: 'Sarmoyachi'):"
	textSearchEmpty     = "😔 Hech narsa topilmadi. Boshqa nom bilan izlab ko'ring yoki bo'limlardan qidiring."
	textSearchResults   = "🔎 Qidiruv natijalari (%d ta):"
	textContact         = "Murojaat uchun: \n@BintuuShavkat\nTel: +998941853575"
	textChannel         = "Bizning rasmiy kanalimizga obuna bo'ling:\nhttps://t.me/Niholbooks_online"
	textProductCard     = "<b>%s</b>\n\n%s\n\nNarxi: %d so'm"
	textAddedToCart     = "✅ Savatga qo'shildi!"
	textCartEmpty       = "Savatingiz bo'sh 🗑"
	textCartHeader      = "🛒 <b>Sizning savatingiz:</b>\n\n"
	textCartLine        = "➖ %s - %d so'm\n"
	textCartUnknownLine = "➖ Noma'lum mahsulot (%d)\n"
	textCartTotal       = "\n<b>Jami: %d so'm</b>"
	textCartCleared     = "Savatingiz tozalandi 🗑"
	textAskPhone        = "Bog'lanish uchun telefon raqamingizni yozing:\n(Masalan: +998901234567)"
	textAskAddress      = "Yashash manzilingizni kiriting:\n(Viloyat, tuman, ko'cha, uy raqami)"
	textAskShipping     = "Yetkazib berish turini tanlang:"
	textCartGoneError   = "Xatolik: Savatingiz bo'shab qoldi."

	textOrderAccepted = "✅ Buyurtmangiz qabul qilindi!\nID: #%s\n\n" +
		"Pochta: %s\n" +
		"Jami to'lov: %d so'm\n\n" +
		"To'lov uchun karta raqamimiz:\n" +
		"💳 <b>5614 6816 2299 2364</b>\n" +
		"Mamedova Gulmira\n" +
		"❗️ <b>Chekni tashlash majburiy!</b>\n\n" +
		"Tez orada aloqaga chiqamiz."
	textAskReceipt      = "📸 Iltimos, to'lov chekini shu yerga yuboring so'ng adminlar tasdiqlashadi."
	textReceiptAccepted = "✅ Chek qabul qilindi! Adminlar tez orada tekshirib tasdiqlashadi."
	textReceiptNotice   = "📥 <b>Chek yuborildi!</b>\nBuyurtma ID: #%s\nXaridor: %s"

	textFeedbackPrompt = "Biz haqimizda fikringizni yozib qoldiring (matn yoki audio):"
	textFeedbackThanks = "✅ Fikringiz uchun rahmat! Bu biz uchun muhim."
	textFeedbackNotice = "📩 <b>Yangi Fikr-mulohaza!</b>\n👤 Kimdan: %s (@%s)"

	textNewOrder = "🆕 Yangi buyurtma! (#%s)\n\n" +
		"👤 Xaridor: %s (@%s)\n" +
		"📞 Tel: %s\n" +
		"📍 Manzil: %s\n" +
		"🚚 Pochta: %s (%d so'm)\n\n" +
		"📚 Kitoblar:\n%s\n" +
		"💰 Jami (pochta bilan): %d so'm"
	textOrderLine        = "- %s (%d so'm)\n"
	textOrderUnknownLine = "- Noma'lum mahsulot (%d)\n"
	textOrderApproved    = "✅ Sizning #%s raqamli buyurtmangiz tasdiqlandi! Tez orada yetkazib beramiz."
	textOrderRejected    = "❌ Sizning #%s raqamli buyurtmangiz bekor qilindi. Iltimos, admin bilan bog'laning."
	textMarkApproved     = "\n\n✅ QABUL QILINDI"
	textMarkRejected     = "\n\n❌ BEKOR QILINDI"
	textAlreadyResolved  = "⚠️ Bu buyurtma allaqachon ko'rib chiqilgan."

	textNotAdmin   = "Siz admin emassiz!"
	textAdminPanel = "Admin Panelga xush kelibsiz!\n\n" +
		"Quyidagi bo'limlardan birini tanlang:\n" +
		"➕ <b>Yangi kitob qo'shish</b> - (/add_product)\n" +
		"✏️ <b>Tahrirlash</b> - (/edit_product)\n" +
		"❌ <b>O'chirish</b> - (/delete_product)\n" +
		"📊 <b>Statistika</b> - (/stats)"
	textAskProductPhoto  = "Yangi kitob rasmini yuboring:"
	textAskProductName   = "Kitob nomini yozing:"
	textAskCategory      = "Kitob kategoriyasini yozing (masalan: 'Psixologiya', 'Diniy', 'Badiiy'):"
	textAskPrice         = "Kitob narxini yozing (faqat raqam, masalan: 50000):"
	textOnlyDigits       = "Iltimos, faqat raqam yozing."
	textAskDescription   = "Kitob haqida ma'lumot (tavsif) yozing:"
	textProductAdded     = "✅ Kitob qo'shildi!\nNomi: %s\nNarxi: %d"
	textNothingToDelete  = "O'chirish uchun mahsulot yo'q."
	textChooseToDelete   = "O'chirmoqchi bo'lgan kitobni tanlang:"
	textProductDeleted   = "✅ Mahsulot o'chirildi."
	textProductMissing   = "⚠️ Mahsulot topilmadi."
	textNothingToEdit    = "O'zgartirish uchun mahsulot yo'q."
	textChooseToEdit     = "O'zgartirmoqchi bo'lgan kitobni tanlang:"
	textChooseEditField  = "Nimasini o'zgartiramiz?"
	textAskNewValue      = "Yangi %sni yozing:"
	textAskNewImage      = "Yangi rasmni yuboring:"
	textSendPhotoPlease  = "Iltimos, rasm yuboring."
	textDigitsPlease     = "Raqam yozing."
	textEdited           = "✅ O'zgartirildi!"
	textEditFailed       = "⚠️ Xatolik: Mahsulot topilmadi."
	textBroadcastPrompt  = "Reklama matnini (yoki rasm/video) yuboring.\nMen uni barcha foydalanuvchilarga tarqataman."
	textBroadcastStarted = "Xabar yuborish boshlandi... (%d ta foydalanuvchi)"
	textBroadcastDone    = "✅ Reklama yuborildi!\n\nQabul qildi: %d ta\nBloklagan/Xato: %d ta"
	textStatsLoading     = "Statistika yuklanmoqda... ⏳"
	textStatsCaption     = "📊 Savdo va Qidiruv statistikasi"
	textStatsFailed      = "Xatolik yuz berdi: statistika tayyorlanmadi."

	textStartupNotice  = "Bot ishga tushdi"
	textShutdownNotice = "Bot to'xtadi"
)
