package verse

// Seed provides the built-in corpus used when no external corpus file is
// configured. Entries carry no similarity score until retrieval attaches one.
func Seed() []Verse {
	return []Verse{
		Default(),
		{
			ID:              "BG2.13",
			Chapter:         2,
			Verse:           13,
			Shloka:          "देहिनोऽस्मिन्यथा देहे कौमारं यौवनं जरा। तथा देहान्तरप्राप्तिर्धीरस्तत्र न मुह्यति॥",
			Transliteration: "dehino 'smin yathā dehe kaumāraṁ yauvanaṁ jarā tathā dehāntara-prāptir dhīras tatra na muhyati",
			EnglishMeaning:  "As the embodied soul continuously passes through childhood, youth, and old age in this body, so does it pass into another body at death. The wise are not deluded by this.",
		},
		{
			ID:              "BG2.14",
			Chapter:         2,
			Verse:           14,
			Shloka:          "मात्रास्पर्शास्तु कौन्तेय शीतोष्णसुखदुःखदाः। आगमापायिनोऽनित्यास्तांस्तितिक्षस्व भारत॥",
			Transliteration: "mātrā-sparśās tu kaunteya śītoṣṇa-sukha-duḥkha-dāḥ āgamāpāyino 'nityās tāṁs titikṣasva bhārata",
			EnglishMeaning:  "The contacts of the senses with their objects give rise to cold and heat, pleasure and pain. They come and go and are impermanent; endure them bravely.",
		},
		{
			ID:              "BG2.20",
			Chapter:         2,
			Verse:           20,
			Shloka:          "न जायते म्रियते वा कदाचिन्नायं भूत्वा भविता वा न भूयः। अजो नित्यः शाश्वतोऽयं पुराणो न हन्यते हन्यमाने शरीरे॥",
			Transliteration: "na jāyate mriyate vā kadāchin nāyaṁ bhūtvā bhavitā vā na bhūyaḥ ajo nityaḥ śāśvato 'yaṁ purāṇo na hanyate hanyamāne śarīre",
			EnglishMeaning:  "The soul is never born nor does it ever die; nor having once existed does it ever cease to be. It is unborn, eternal, permanent, and primeval. It is not slain when the body is slain.",
		},
		{
			ID:              "BG2.48",
			Chapter:         2,
			Verse:           48,
			Shloka:          "योगस्थः कुरु कर्माणि सङ्गं त्यक्त्वा धनञ्जय। सिद्ध्यसिद्ध्योः समो भूत्वा समत्वं योग उच्यते॥",
			Transliteration: "yoga-sthaḥ kuru karmāṇi saṅgaṁ tyaktvā dhanañjaya siddhy-asiddhyoḥ samo bhūtvā samatvaṁ yoga uchyate",
			EnglishMeaning:  "Perform your duty established in yoga, abandoning attachment, and be even-minded in success and failure. Such equanimity is called yoga.",
		},
		{
			ID:              "BG2.62",
			Chapter:         2,
			Verse:           62,
			Shloka:          "ध्यायतो विषयान्पुंसः सङ्गस्तेषूपजायते। सङ्गात्सञ्जायते कामः कामात्क्रोधोऽभिजायते॥",
			Transliteration: "dhyāyato viṣayān puṁsaḥ saṅgas teṣūpajāyate saṅgāt sañjāyate kāmaḥ kāmāt krodho 'bhijāyate",
			EnglishMeaning:  "While contemplating the objects of the senses, a person develops attachment for them; from attachment desire is born, and from desire anger arises.",
		},
		{
			ID:              "BG3.35",
			Chapter:         3,
			Verse:           35,
			Shloka:          "श्रेयान्स्वधर्मो विगुणः परधर्मात्स्वनुष्ठितात्। स्वधर्मे निधनं श्रेयः परधर्मो भयावहः॥",
			Transliteration: "śreyān sva-dharmo viguṇaḥ para-dharmāt sv-anuṣṭhitāt sva-dharme nidhanaṁ śreyaḥ para-dharmo bhayāvahaḥ",
			EnglishMeaning:  "It is far better to perform one's own duty, though imperfectly, than to perform another's duty perfectly. It is better to die in the discharge of one's own duty; the duty of another is fraught with fear.",
		},
		{
			ID:              "BG4.7",
			Chapter:         4,
			Verse:           7,
			Shloka:          "यदा यदा हि धर्मस्य ग्लानिर्भवति भारत। अभ्युत्थानमधर्मस्य तदात्मानं सृजाम्यहम्॥",
			Transliteration: "yadā yadā hi dharmasya glānir bhavati bhārata abhyutthānam adharmasya tadātmānaṁ sṛijāmy aham",
			EnglishMeaning:  "Whenever there is a decline in righteousness and an increase in unrighteousness, at that time I manifest myself on earth.",
		},
		{
			ID:              "BG6.5",
			Chapter:         6,
			Verse:           5,
			Shloka:          "उद्धरेदात्मनात्मानं नात्मानमवसादयेत्। आत्मैव ह्यात्मनो बन्धुरात्मैव रिपुरात्मनः॥",
			Transliteration: "uddhared ātmanātmānaṁ nātmānam avasādayet ātmaiva hy ātmano bandhur ātmaiva ripur ātmanaḥ",
			EnglishMeaning:  "Elevate yourself through the power of your own mind, and not degrade yourself, for the mind can be the friend and also the enemy of the self.",
		},
		{
			ID:              "BG12.13",
			Chapter:         12,
			Verse:           13,
			Shloka:          "अद्वेष्टा सर्वभूतानां मैत्रः करुण एव च। निर्ममो निरहङ्कारः समदुःखसुखः क्षमी॥",
			Transliteration: "adveṣṭā sarva-bhūtānāṁ maitraḥ karuṇa eva cha nirmamo nirahaṅkāraḥ sama-duḥkha-sukhaḥ kṣamī",
			EnglishMeaning:  "One who bears no ill will toward any being, who is friendly and compassionate, free from possessiveness and ego, even-minded in pain and pleasure, and forgiving.",
		},
		{
			ID:              "BG18.66",
			Chapter:         18,
			Verse:           66,
			Shloka:          "सर्वधर्मान्परित्यज्य मामेकं शरणं व्रज। अहं त्वां सर्वपापेभ्यो मोक्षयिष्यामि मा शुचः॥",
			Transliteration: "sarva-dharmān parityajya mām ekaṁ śaraṇaṁ vraja ahaṁ tvāṁ sarva-pāpebhyo mokṣayiṣyāmi mā śuchaḥ",
			EnglishMeaning:  "Abandon all varieties of duty and simply surrender unto me. I shall deliver you from all sinful reactions; do not fear.",
		},
	}
}
