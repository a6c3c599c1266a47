package transactionservice

import (
	"context"
	"testing"
	"time"

	"github.com/avelhart/duobank/internal/domain"
	"github.com/avelhart/duobank/pkg/errorspkg"
	"github.com/avelhart/duobank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func randomAccount(ownerID uuid.UUID, t domain.AccountType, balance int64) domain.Account {
	return domain.Account{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AccountNumber: randompkg.AccountNumber(),
		Type:          t,
		Balance:       balance,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}

func TestDeposit(t *testing.T) {
	testOwnerID := uuid.New()
	testAccount := randomAccount(testOwnerID, domain.Current, 200)
	testCaller := domain.AuthUser{ID: testOwnerID, CurrentAccountID: testAccount.ID}
	ownedFilter := domain.AccountFilter{ID: testAccount.ID, OwnerID: testOwnerID}

	updatedAccount := testAccount
	updatedAccount.Balance = 300

	testCases := []struct {
		name          string
		accountType   string
		amount        int64
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name:        "Invalid account type",
			accountType: "CHECKING",
			amount:      100,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAccountType.Error())
			},
		},
		{
			name:        "Invalid amount",
			accountType: string(domain.Current),
			amount:      0,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:        "Account not found",
			accountType: string(domain.Current),
			amount:      100,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(ownedFilter)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name:        "Update affected no rows",
			accountType: string(domain.Current),
			amount:      100,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(ownedFilter)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().
					UpdateBalance(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(testAccount.ID), gomock.Eq(int64(300))).
					Times(1).
					Return(int64(0), nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrUpdateConflict.Error())
			},
		},
		{
			name:        "OK",
			accountType: string(domain.Current),
			amount:      100,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(ownedFilter)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().
					UpdateBalance(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(testAccount.ID), gomock.Eq(int64(300))).
					Times(1).
					Return(int64(1), nil)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(domain.AccountFilter{ID: testAccount.ID})).
					Times(1).
					Return(updatedAccount, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, updatedAccount, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			transactionService := New(transactionRepo)

			tc.buildStubs(transactionRepo)

			tc.checkResponse(transactionService.Deposit(
				context.Background(), testCaller, tc.accountType, testAccount.ID, tc.amount))
		})
	}
}

func TestWithdraw(t *testing.T) {
	testOwnerID := uuid.New()
	testAccount := randomAccount(testOwnerID, domain.Savings, 200)
	testCaller := domain.AuthUser{ID: testOwnerID, SavingsAccountID: testAccount.ID}
	ownedFilter := domain.AccountFilter{ID: testAccount.ID, OwnerID: testOwnerID}

	updatedAccount := testAccount
	updatedAccount.Balance = 150

	testCases := []struct {
		name          string
		accountType   string
		amount        int64
		buildStubs    func(repo *MockRepo)
		checkResponse func(res domain.Account, err error)
	}{
		{
			name:        "Invalid amount",
			accountType: string(domain.Savings),
			amount:      -50,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:        "Lookup miss reported as access denied",
			accountType: string(domain.Savings),
			amount:      50,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(ownedFilter)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountAccessDenied.Error())
			},
		},
		{
			name:        "Lookup internal error",
			accountType: string(domain.Savings),
			amount:      50,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(ownedFilter)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name:        "Insufficient funds",
			accountType: string(domain.Savings),
			amount:      500,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(ownedFilter)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientFunds.Error())
			},
		},
		{
			name:        "Update affected no rows",
			accountType: string(domain.Savings),
			amount:      50,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(ownedFilter)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().
					UpdateBalance(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(testAccount.ID), gomock.Eq(int64(150))).
					Times(1).
					Return(int64(0), nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrUpdateConflict.Error())
			},
		},
		{
			name:        "OK",
			accountType: string(domain.Savings),
			amount:      50,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(ownedFilter)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().
					UpdateBalance(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(testAccount.ID), gomock.Eq(int64(150))).
					Times(1).
					Return(int64(1), nil)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(domain.AccountFilter{ID: testAccount.ID})).
					Times(1).
					Return(updatedAccount, nil)
			},
			checkResponse: func(res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, updatedAccount, res)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			transactionService := New(transactionRepo)

			tc.buildStubs(transactionRepo)

			tc.checkResponse(transactionService.Withdraw(
				context.Background(), testCaller, tc.accountType, testAccount.ID, tc.amount))
		})
	}
}

func TestTransfer(t *testing.T) {
	testOwnerID := uuid.New()
	senderAccount := randomAccount(testOwnerID, domain.Current, 1000)
	receiverAccount := randomAccount(uuid.New(), domain.Savings, 1000)
	callerSavings := randomAccount(testOwnerID, domain.Savings, 0)

	testCaller := domain.AuthUser{
		ID:               testOwnerID,
		CurrentAccountID: senderAccount.ID,
		SavingsAccountID: callerSavings.ID,
	}

	transferArg := domain.TransferParams{
		Sender: domain.TransferSender{
			AccountID: senderAccount.ID,
			Type:      domain.Current,
		},
		Receiver: domain.TransferReceiver{
			AccountNumber: receiverAccount.AccountNumber,
			Type:          domain.Savings,
		},
		Amount: 100,
	}

	senderFilter := domain.AccountFilter{ID: senderAccount.ID, OwnerID: testOwnerID}
	receiverFilter := domain.AccountFilter{AccountNumber: receiverAccount.AccountNumber}

	testCases := []struct {
		name          string
		caller        domain.AuthUser
		arg           domain.TransferParams
		buildStubs    func(repo *MockRepo)
		checkResponse func(err error)
	}{
		{
			name:   "Invalid sender account type",
			caller: testCaller,
			arg: domain.TransferParams{
				Sender:   domain.TransferSender{AccountID: senderAccount.ID, Type: "LOAN"},
				Receiver: transferArg.Receiver,
				Amount:   100,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, domain.ErrInvalidAccountType.Error())
			},
		},
		{
			name:   "Invalid receiver account type",
			caller: testCaller,
			arg: domain.TransferParams{
				Sender:   transferArg.Sender,
				Receiver: domain.TransferReceiver{AccountNumber: receiverAccount.AccountNumber, Type: ""},
				Amount:   100,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, domain.ErrInvalidAccountType.Error())
			},
		},
		{
			name:   "Invalid amount",
			caller: testCaller,
			arg: domain.TransferParams{
				Sender:   transferArg.Sender,
				Receiver: transferArg.Receiver,
				Amount:   -100,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().FindOne(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:   "Sender lookup internal error",
			caller: testCaller,
			arg:    transferArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(senderFilter)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name:   "Receiver lookup internal error",
			caller: testCaller,
			arg:    transferArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(senderFilter)).
					Times(1).
					Return(senderAccount, nil)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(receiverFilter)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name:   "Transfer to own savings account",
			caller: testCaller,
			arg: domain.TransferParams{
				Sender: transferArg.Sender,
				Receiver: domain.TransferReceiver{
					AccountNumber: callerSavings.AccountNumber,
					Type:          domain.Savings,
				},
				Amount: 100,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(senderFilter)).
					Times(1).
					Return(senderAccount, nil)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(domain.AccountFilter{AccountNumber: callerSavings.AccountNumber})).
					Times(1).
					Return(callerSavings, nil)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, domain.ErrSelfTransfer.Error())
			},
		},
		{
			name:   "Caller without savings and missing receiver hits the self guard",
			caller: domain.AuthUser{ID: testOwnerID, CurrentAccountID: senderAccount.ID},
			arg:    transferArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(senderFilter)).
					Times(1).
					Return(senderAccount, nil)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(receiverFilter)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, domain.ErrSelfTransfer.Error())
			},
		},
		{
			name:   "Receiver not found",
			caller: testCaller,
			arg:    transferArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(senderFilter)).
					Times(1).
					Return(senderAccount, nil)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(receiverFilter)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name:   "Sender not found",
			caller: testCaller,
			arg:    transferArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(senderFilter)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(receiverFilter)).
					Times(1).
					Return(receiverAccount, nil)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name:   "Insufficient funds",
			caller: testCaller,
			arg: domain.TransferParams{
				Sender:   transferArg.Sender,
				Receiver: transferArg.Receiver,
				Amount:   5000,
			},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(senderFilter)).
					Times(1).
					Return(senderAccount, nil)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(receiverFilter)).
					Times(1).
					Return(receiverAccount, nil)
				repo.EXPECT().TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, domain.ErrInsufficientFunds.Error())
			},
		},
		{
			name:   "OK",
			caller: testCaller,
			arg:    transferArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(senderFilter)).
					Times(1).
					Return(senderAccount, nil)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(receiverFilter)).
					Times(1).
					Return(receiverAccount, nil)
				repo.EXPECT().
					TransferTx(gomock.Any(),
						gomock.Eq(domain.BalanceUpdate{
							Type:      domain.Current,
							AccountID: senderAccount.ID,
							Balance:   900,
						}),
						gomock.Eq(domain.BalanceUpdate{
							Type:      domain.Savings,
							AccountID: receiverAccount.ID,
							Balance:   1100,
						})).
					Times(1).
					Return(nil)
			},
			checkResponse: func(err error) {
				require.NoError(t, err)
			},
		},
		{
			name:   "TransferTx error",
			caller: testCaller,
			arg:    transferArg,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Current), gomock.Eq(senderFilter)).
					Times(1).
					Return(senderAccount, nil)
				repo.EXPECT().
					FindOne(gomock.Any(), gomock.Eq(domain.Savings), gomock.Eq(receiverFilter)).
					Times(1).
					Return(receiverAccount, nil)
				repo.EXPECT().
					TransferTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.ErrUpdateConflict)
			},
			checkResponse: func(err error) {
				require.EqualError(t, err, domain.ErrUpdateConflict.Error())
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockRepo(ctrl)
			transactionService := New(transactionRepo)

			tc.buildStubs(transactionRepo)

			tc.checkResponse(transactionService.Transfer(context.Background(), tc.caller, tc.arg))
		})
	}
}
